package runbook

import (
	"github.com/eshaffer321/runbook-go/internal/auth"
	internalTypes "github.com/eshaffer321/runbook-go/internal/types"
	"github.com/pkg/errors"
)

// RequestError is the classified form of every failed API call. Messages
// always holds at least one entry; Attributes groups the same messages by
// field name, with "base" for messages not tied to a field.
type RequestError = internalTypes.RequestError

// ErrorDetail is a single classified message and its machine code
type ErrorDetail = internalTypes.ErrorDetail

// ErrorKind tells which path produced a RequestError
type ErrorKind = internalTypes.ErrorKind

const (
	HTTPFailure      = internalTypes.HTTPFailure
	TransportFailure = internalTypes.TransportFailure
	GraphQLEnvelope  = internalTypes.GraphQLEnvelope
	MutationResult   = internalTypes.MutationResult
)

// BaseAttribute is the Attributes key for messages not tied to a field
const BaseAttribute = internalTypes.BaseAttribute

var (
	// ErrInvalidConfig is returned by NewClient for unusable options
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrMissingToken is returned when no API token is configured
	ErrMissingToken = auth.ErrMissingToken

	// ErrQueryNotFound is returned by Query for an unknown query name
	ErrQueryNotFound = internalTypes.ErrQueryNotFound

	ErrUnauthorized  = internalTypes.ErrUnauthorized
	ErrForbidden     = internalTypes.ErrForbidden
	ErrNotFound      = internalTypes.ErrNotFound
	ErrBadRequest    = internalTypes.ErrBadRequest
	ErrUnprocessable = internalTypes.ErrUnprocessable
	ErrServerError   = internalTypes.ErrServerError
	ErrNetwork       = internalTypes.ErrNetwork
)

// AsRequestError unwraps err into a *RequestError
func AsRequestError(err error) (*RequestError, bool) {
	return internalTypes.AsRequestError(err)
}

// IsAuthError reports whether err is an authentication or authorization failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrMissingToken)
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err carries field level messages, either
// from a 422 response or from a mutation result.
func IsValidationError(err error) bool {
	reqErr, ok := AsRequestError(err)
	if !ok {
		return false
	}
	for attr := range reqErr.Attributes {
		if attr != BaseAttribute {
			return true
		}
	}
	return reqErr.Kind == MutationResult
}
