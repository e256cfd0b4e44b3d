// Package auth validates API keys for the validation server. Keys carry the
// mlk_ prefix; the first eight characters index the key record, and the full
// key is verified against a bcrypt hash.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Authenticator validates an API key and returns the owning project.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*ProjectContext, error)
}

// ProjectContext identifies the authenticated caller.
type ProjectContext struct {
	ProjectID string
	FailOpen  bool
}

// ErrUnauthenticated is returned when no valid credentials are found.
var ErrUnauthenticated = errors.New("unauthenticated")

const keyPrefix = "mlk_"

// ExtractAPIKey pulls the mlk_ bearer key from an HTTP request.
func ExtractAPIKey(r *http.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", ErrUnauthenticated
	}
	token = strings.TrimPrefix(token, "Bearer ")
	token = strings.TrimPrefix(token, "bearer ")
	if !strings.HasPrefix(token, keyPrefix) {
		return "", ErrUnauthenticated
	}
	return token, nil
}
