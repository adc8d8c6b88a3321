// Package auth persists the transcription service API key in the system keyring.
package auth

import (
	"errors"

	"github.com/glossa-cli/glossa/constant"
	"github.com/zalando/go-keyring"
)

const user = "transcription-api-key"

// EnvAPIKey overrides the keyring entry when set.
const EnvAPIKey = "GLOSSA_API_KEY"

// SetAPIKey persists the transcription API key to the system keyring.
func SetAPIKey(token string) error {
	return keyring.Set(constant.App, user, token)
}

// APIKey retrieves the transcription API key. A missing entry is not an error.
func APIKey() (string, error) {
	token, err := keyring.Get(constant.App, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// DeleteAPIKey removes the transcription API key from the system keyring.
func DeleteAPIKey() error {
	err := keyring.Delete(constant.App, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
