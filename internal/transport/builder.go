package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/eshaffer321/runbook-go/internal/casing"
	"github.com/pkg/errors"
)

const (
	methodOverrideHeader = "X-Http-Method-Override"
	requestedWithHeader  = "X-Requested-With"
	requestedWithValue   = "XMLHttpRequest"
	contentTypeHeader    = "Content-Type"
)

// Mode selects how a REST request is addressed and converted
type Mode int

const (
	// ModeAPI targets {base}/api/{path}.json and converts keys in both
	// directions.
	ModeAPI Mode = iota
	// ModeRaw targets {base}/api/{path} and leaves payloads untouched.
	ModeRaw
)

// Param is a single query string parameter. A nil Value (or nil pointer)
// means the parameter is absent and it is not sent.
type Param struct {
	Name  string
	Value interface{}
}

// Request is a logical REST request
type Request struct {
	Path    string
	Method  string
	Headers map[string]string
	Body    Body
	Query   []Param
}

// Build turns a logical request into a wire request. PUT, PATCH and DELETE
// are sent as POST with the verb in X-Http-Method-Override because the API
// only accepts GET and POST.
func (e *executor) Build(ctx context.Context, r *Request, mode Mode) (*http.Request, error) {
	if r == nil {
		return nil, errors.New("request is nil")
	}

	method, override, err := resolveMethod(r.Method)
	if err != nil {
		return nil, err
	}

	target := e.url(strings.TrimPrefix(r.Path, "/"))
	if mode == ModeAPI {
		target += ".json"
	}
	if qs := encodeQuery(r.Query); qs != "" {
		target += "?" + qs
	}

	var body io.Reader
	var contentType string
	if r.Body != nil {
		body, contentType, err = r.Body.encode(mode)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set(contentTypeHeader, contentType)
	}
	if override != "" {
		req.Header.Set(methodOverrideHeader, override)
	}
	req.Header.Set(requestedWithHeader, requestedWithValue)

	return req, nil
}

// resolveMethod returns the wire method and the override header value
func resolveMethod(method string) (string, string, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case "", http.MethodGet:
		return http.MethodGet, "", nil
	case http.MethodPost:
		return http.MethodPost, "", nil
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return http.MethodPost, method, nil
	default:
		return "", "", errors.Errorf("unsupported method %q", method)
	}
}

// encodeQuery snake-cases parameter names and percent-encodes values,
// keeping the given order and dropping absent values
func encodeQuery(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		value, ok := formatValue(p.Value)
		if !ok {
			continue
		}
		parts = append(parts, escape(casing.ToSnake(p.Name))+"="+escape(value))
	}
	return strings.Join(parts, "&")
}

// escape percent-encodes s the way encodeURIComponent does
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatValue(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", false
		}
		return formatValue(rv.Elem().Interface())
	}

	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case []string:
		return strings.Join(val, ","), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}
