// Package network provides the pre-configured HTTP client used for transcription uploads.
package network

import (
	"net/http"
	"time"

	"github.com/glossa-cli/glossa/constant"
)

// Client is the HTTP client shared across the application.
// Request deadlines come from the caller's context; the transport only bounds connection setup.
var Client = &http.Client{
	Transport: &userAgentTransport{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}

// userAgentTransport stamps outgoing requests with the application User-Agent.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	return t.base.RoundTrip(req)
}
