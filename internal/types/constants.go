package types

import (
	"errors"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "runbook-go/1.0.0"

	// BaseAttribute is the attribute name used for messages not tied to a field
	BaseAttribute = "base"

	// GenericErrorMessage is the message used when nothing better is known
	GenericErrorMessage = "An error occurred while requesting."

	// GenericErrorCode is the error code paired with GenericErrorMessage
	GenericErrorCode = "request_error"
)

// Common errors
var (
	// ErrUnauthorized matches 401 responses
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden matches 403 responses
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound matches 404 responses
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest matches 400 responses
	ErrBadRequest = errors.New("bad request")

	// ErrUnprocessable matches GraphQL and mutation result errors (422)
	ErrUnprocessable = errors.New("unprocessable entity")

	// ErrServerError matches 5xx responses
	ErrServerError = errors.New("server error")

	// ErrNetwork matches failures where no HTTP response was obtained
	ErrNetwork = errors.New("network error")

	// ErrQueryNotFound is returned when a named query is not registered
	ErrQueryNotFound = errors.New("query not found")
)
