package types

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind tells which path produced a RequestError
type ErrorKind int

const (
	// HTTPFailure is a non-2xx HTTP response
	HTTPFailure ErrorKind = iota
	// TransportFailure means no HTTP response was obtained (status 0)
	TransportFailure
	// GraphQLEnvelope is a top-level "errors" list in a GraphQL response
	GraphQLEnvelope
	// MutationResult is an errors list or success=false inside mutation data
	MutationResult
)

func (k ErrorKind) String() string {
	switch k {
	case HTTPFailure:
		return "http_failure"
	case TransportFailure:
		return "transport_failure"
	case GraphQLEnvelope:
		return "graphql_error"
	case MutationResult:
		return "mutation_error"
	default:
		return "unknown"
	}
}

// ErrorDetail is a single classified message
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"error"`
}

// RequestError is the classified form of every failed API call. It is built
// once by Classify and not modified afterwards.
type RequestError struct {
	Kind       ErrorKind                `json:"kind"`
	StatusCode int                      `json:"status"`
	Raw        string                   `json:"-"`
	Payload    interface{}              `json:"payload,omitempty"`
	Messages   []string                 `json:"messages"`
	Attributes map[string][]ErrorDetail `json:"attributes"`
	Err        error                    `json:"-"`
}

// Error implements the error interface
func (e *RequestError) Error() string {
	var b strings.Builder
	switch {
	case e.StatusCode == 0:
		b.WriteString("request failed")
	case e.Kind == GraphQLEnvelope || e.Kind == MutationResult:
		fmt.Fprintf(&b, "%s (%d)", e.Kind, e.StatusCode)
	default:
		fmt.Fprintf(&b, "request failed with status %d", e.StatusCode)
		if desc := http.StatusText(e.StatusCode); desc != "" {
			fmt.Fprintf(&b, " (%s)", desc)
		}
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying transport error, if any
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the status sentinels
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == TransportFailure
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnprocessable:
		return e.StatusCode == http.StatusUnprocessableEntity
	case ErrServerError:
		return e.StatusCode >= 500
	}
	return false
}

// Code returns a canonical code for the status of the failure
func (e *RequestError) Code() string {
	switch e.StatusCode {
	case 0:
		return "network_error"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnprocessableEntity:
		return "unprocessable_entity"
	case http.StatusInternalServerError:
		return "internal_server_error"
	}
	return GenericErrorCode
}

// FieldErrors returns the details recorded for an attribute
func (e *RequestError) FieldErrors(attr string) []ErrorDetail {
	if attr == "" {
		attr = BaseAttribute
	}
	return e.Attributes[attr]
}

// AsRequestError unwraps err into a *RequestError
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
