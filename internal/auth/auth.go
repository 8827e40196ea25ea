// Package auth applies static API token authentication to outgoing requests.
package auth

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const (
	authHeaderKey = "Authorization"
	bearerScheme  = "Bearer"
)

// ErrMissingToken is returned when no API token is configured
var ErrMissingToken = errors.New("api token is required")

// Handler applies authentication to a request
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// Bearer authenticates with a static bearer token
type Bearer struct {
	token string
}

// NewBearer creates a bearer token handler
func NewBearer(token string) (*Bearer, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	return &Bearer{token: token}, nil
}

// ApplyAuth sets the Authorization header
func (b *Bearer) ApplyAuth(req *http.Request) error {
	if b == nil || b.token == "" {
		return ErrMissingToken
	}
	req.Header.Set(authHeaderKey, bearerScheme+" "+b.token)
	return nil
}

// String returns a redacted form of the token safe for logs
func (b *Bearer) String() string {
	if b == nil || b.token == "" {
		return ""
	}
	if len(b.token) <= 8 {
		return bearerScheme + " ****"
	}
	return bearerScheme + " " + b.token[:4] + "****"
}
