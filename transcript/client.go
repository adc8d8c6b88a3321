package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/network"
)

// Config configures the HTTP transcription client.
type Config struct {
	// Endpoint receives the multipart upload, e.g. http://localhost:8001/transcribe.
	Endpoint string

	// Token is sent as a bearer token when set.
	Token string

	// Model is forwarded as a form field; servers that pick their own model ignore it.
	Model string

	Timeout time.Duration
}

// Client posts media to a transcription endpoint. It understands both the
// segment list with clip sequences and plain Whisper verbose_json responses.
// Failures are returned as is; there is no retry.
type Client struct {
	cfg  Config
	http *http.Client
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// NewClient creates a client using the shared network client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &Client{cfg: cfg, http: network.Client}
}

// Transcribe uploads the file at mediaPath.
func (c *Client) Transcribe(ctx context.Context, mediaPath string) (*Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	f, err := filesystem.API().Open(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		part, err := writer.CreateFormFile("file", filepath.Base(mediaPath))
		if err != nil {
			errCh <- fmt.Errorf("create form file: %w", err)
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			errCh <- fmt.Errorf("copy media: %w", err)
			pw.CloseWithError(err)
			return
		}
		if c.cfg.Model != "" {
			_ = writer.WriteField("model", c.cfg.Model)
		}
		_ = writer.WriteField("response_format", "verbose_json")

		err = writer.Close()
		errCh <- err
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("transcribe %s: %w", filepath.Base(mediaPath), err)
	}
	defer resp.Body.Close()

	// A server may answer before it has read the upload. Its status wins over
	// the closed pipe the upload then fails with.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		pr.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(body, 200)}
	}

	if writeErr := <-errCh; writeErr != nil {
		return nil, fmt.Errorf("multipart write: %w", writeErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	t := doc.Transcript()
	log.WithFields(log.Fields{
		"media":    filepath.Base(mediaPath),
		"segments": len(t.Segments),
		"took":     time.Since(started).Round(time.Millisecond),
	}).Info("transcribed")

	return t, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
