package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
	"sort"

	"github.com/eshaffer321/runbook-go/internal/casing"
	"github.com/pkg/errors"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeText = "text/plain"
)

// Body is a request payload. The set of implementations is closed: use
// JSONBody, FormBody, TextBody or MultipartBody.
type Body interface {
	// encode returns the wire payload and its content type. An empty content
	// type means the builder sets none.
	encode(mode Mode) (io.Reader, string, error)
}

type jsonBody struct {
	value interface{}
}

// JSONBody sends v as JSON. In API mode its keys are converted to snake_case.
func JSONBody(v interface{}) Body {
	return jsonBody{value: v}
}

func (b jsonBody) encode(mode Mode) (io.Reader, string, error) {
	value := b.value
	if mode == ModeAPI {
		normalized, err := normalize(value)
		if err != nil {
			return nil, "", err
		}
		value = casing.DeepSnake(normalized)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to marshal request body")
	}
	return bytes.NewReader(data), contentTypeJSON, nil
}

type formBody struct {
	values url.Values
}

// FormBody sends values URL-encoded.
func FormBody(values url.Values) Body {
	return formBody{values: values}
}

func (b formBody) encode(Mode) (io.Reader, string, error) {
	return bytes.NewReader([]byte(b.values.Encode())), contentTypeForm, nil
}

type textBody string

// TextBody sends s verbatim as text/plain.
func TextBody(s string) Body {
	return textBody(s)
}

func (b textBody) encode(Mode) (io.Reader, string, error) {
	return bytes.NewReader([]byte(b)), contentTypeText, nil
}

type multipartBody struct {
	reader      io.Reader
	contentType string
}

// MultipartBody sends an already encoded multipart form. contentType must
// carry the boundary, as returned by multipart.Writer.FormDataContentType.
// r is read once, so the body can only be sent once; use NewMultipartBody
// for a reusable body.
func MultipartBody(r io.Reader, contentType string) Body {
	return multipartBody{reader: r, contentType: contentType}
}

func (b multipartBody) encode(Mode) (io.Reader, string, error) {
	if b.reader == nil {
		return nil, "", errors.New("multipart body has no content")
	}
	return b.reader, b.contentType, nil
}

// encodedMultipart is a multipart form already held in memory. Unlike
// MultipartBody it can be sent any number of times.
type encodedMultipart struct {
	data        []byte
	contentType string
}

func (b encodedMultipart) encode(Mode) (io.Reader, string, error) {
	return bytes.NewReader(b.data), b.contentType, nil
}

// FormFile is a file part of a multipart form
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// NewMultipartBody encodes fields and files into a multipart body. Fields
// are written in key order.
func NewMultipartBody(fields map[string]string, files ...FormFile) (Body, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := writer.WriteField(k, fields[k]); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s field", k)
		}
	}

	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create form file")
		}
		if f.Content != nil {
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, errors.Wrapf(err, "failed to write %s", f.Filename)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close multipart writer")
	}

	return encodedMultipart{data: buf.Bytes(), contentType: writer.FormDataContentType()}, nil
}

// normalize turns any JSON-serializable value into maps, slices and scalars
// so struct tags decide the keys that get converted.
func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request body")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "failed to normalize request body")
	}
	return out, nil
}
