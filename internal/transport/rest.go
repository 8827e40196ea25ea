package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/eshaffer321/runbook-go/internal/casing"
	"github.com/pkg/errors"
)

// RESTTransport handles the JSON REST API, uploads and downloads
type RESTTransport struct {
	*executor
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	return &RESTTransport{executor: newExecutor(opts)}
}

// Do sends req and decodes the response into out. In ModeAPI the response
// keys are converted to camelCase first; in ModeRaw they are left as sent.
// out may be nil to discard the body or a *[]byte to receive it unparsed.
func (t *RESTTransport) Do(ctx context.Context, req *Request, mode Mode, out interface{}) error {
	httpReq, err := t.Build(ctx, req, mode)
	if err != nil {
		return err
	}

	resp, err := t.send(ctx, httpReq)
	if err != nil {
		return err
	}

	return decode(resp.Body, mode == ModeAPI, out)
}

// Upload posts a multipart form to {base}/api/{path}. The file is sent
// under file.Field; extra form fields are sent as is. The JSON response is
// converted to camelCase.
func (t *RESTTransport) Upload(ctx context.Context, path string, file FormFile, fields map[string]string, out interface{}) error {
	if file.Field == "" {
		return errors.New("upload field name is required")
	}

	body, err := NewMultipartBody(fields, file)
	if err != nil {
		return err
	}

	httpReq, err := t.Build(ctx, &Request{
		Path:   path,
		Method: http.MethodPost,
		Body:   body,
	}, ModeRaw)
	if err != nil {
		return err
	}

	resp, err := t.send(ctx, httpReq)
	if err != nil {
		return err
	}

	return decode(resp.Body, true, out)
}

// Download fetches {base}/api/{path}?proxy=1 and returns the payload bytes
// untouched. Extra query parameter names are converted to snake_case.
func (t *RESTTransport) Download(ctx context.Context, path string, query ...Param) ([]byte, error) {
	params := make([]Param, 0, len(query)+1)
	params = append(params, Param{Name: "proxy", Value: 1})
	params = append(params, query...)

	httpReq, err := t.Build(ctx, &Request{
		Path:   path,
		Method: http.MethodGet,
		Query:  params,
	}, ModeRaw)
	if err != nil {
		return nil, err
	}

	resp, err := t.send(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// decode stores a response body into out, converting keys to camelCase when
// camel is set
func decode(body []byte, camel bool, out interface{}) error {
	if out == nil {
		return nil
	}

	if raw, ok := out.(*[]byte); ok {
		*raw = body
		return nil
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if !camel {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrap(err, "failed to parse response")
		}
		return nil
	}

	// numbers stay json.Number so large integers survive the conversion
	var parsed interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	if dec.More() {
		return errors.New("failed to parse response: trailing data after JSON value")
	}
	converted := casing.DeepCamel(parsed)

	if target, ok := out.(*interface{}); ok {
		*target = converted
		return nil
	}

	data, err := json.Marshal(converted)
	if err != nil {
		return errors.Wrap(err, "failed to encode converted response")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal result")
	}
	return nil
}
