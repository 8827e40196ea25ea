package runbook

import (
	"io"
	"net/url"

	"github.com/eshaffer321/runbook-go/internal/transport"
)

// Request is a logical REST request. Method defaults to GET; PUT, PATCH and
// DELETE are tunnelled through POST.
type Request = transport.Request

// Param is a query string parameter. A nil Value is omitted.
type Param = transport.Param

// Body is a request body. Use JSONBody, FormBody, TextBody or a multipart
// constructor to create one.
type Body = transport.Body

// FormFile is a file part of a multipart form
type FormFile = transport.FormFile

// JSONBody sends v as JSON. Request converts its keys to snake_case.
func JSONBody(v interface{}) Body {
	return transport.JSONBody(v)
}

// FormBody sends URL encoded form values
func FormBody(values url.Values) Body {
	return transport.FormBody(values)
}

// TextBody sends s as text/plain
func TextBody(s string) Body {
	return transport.TextBody(s)
}

// MultipartBody sends an already encoded multipart stream. contentType must
// carry its boundary.
func MultipartBody(r io.Reader, contentType string) Body {
	return transport.MultipartBody(r, contentType)
}

// NewMultipartBody encodes fields and files as multipart/form-data
func NewMultipartBody(fields map[string]string, files ...FormFile) (Body, error) {
	return transport.NewMultipartBody(fields, files...)
}
