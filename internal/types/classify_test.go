package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warns  []string
	debugs []string
}

func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.debugs = append(l.debugs, msg) }
func (l *recordingLogger) Info(string, ...interface{})        {}
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(string, ...interface{})       {}

func assertConsistent(t *testing.T, e *RequestError) {
	t.Helper()
	total := 0
	for _, details := range e.Attributes {
		for _, d := range details {
			assert.NotEmpty(t, d.Message)
		}
		total += len(details)
	}
	assert.Equal(t, len(e.Messages), total, "messages and attributes out of sync")
	assert.NotEmpty(t, e.Messages)
}

func TestClassify_StringList(t *testing.T) {
	e := Classify(HTTPFailure, 400, `["bad thing"]`, nil)

	require.Len(t, e.Messages, 1)
	assert.Equal(t, "bad thing", e.Messages[0])
	require.Len(t, e.Attributes[BaseAttribute], 1)
	assert.Equal(t, "bad thing", e.Attributes[BaseAttribute][0].Message)
	assert.Equal(t, 400, e.StatusCode)
	assertConsistent(t, e)
}

func TestClassify_ErrorsWithAttribute(t *testing.T) {
	body := `{"errors":[{"attribute":"name","message":"too short","error":"length"}]}`

	e := Classify(HTTPFailure, 422, body, nil)

	require.Len(t, e.Attributes["name"], 1)
	assert.Equal(t, ErrorDetail{Message: "too short", Code: "length"}, e.Attributes["name"][0])
	assert.Equal(t, []string{"too short"}, e.Messages)
	assert.Empty(t, e.Attributes[BaseAttribute])
	assertConsistent(t, e)
}

func TestClassify_ErrorString(t *testing.T) {
	e := Classify(HTTPFailure, 403, `{"error":"permission_denied"}`, nil)

	assert.Equal(t, []string{"permission_denied"}, e.Messages)
	assert.Equal(t, "permission_denied", e.Attributes[BaseAttribute][0].Code)
	assertConsistent(t, e)
}

func TestClassify_UnparseableBody(t *testing.T) {
	logger := &recordingLogger{}

	e := Classify(HTTPFailure, 500, "<html>Internal Server Error</html>", logger)

	require.Len(t, e.Messages, 1)
	assert.Equal(t, GenericErrorMessage, e.Messages[0])
	assert.Equal(t, GenericErrorCode, e.Attributes[BaseAttribute][0].Code)
	assert.Equal(t, "<html>Internal Server Error</html>", e.Payload)
	assert.Equal(t, "<html>Internal Server Error</html>", e.Raw)
	assert.Len(t, logger.warns, 1, "parse failure should be logged")
	assertConsistent(t, e)
}

func TestClassify_EmptyBodyLogsAtDebug(t *testing.T) {
	logger := &recordingLogger{}

	e := Classify(HTTPFailure, 502, "", logger)

	assert.Equal(t, []string{GenericErrorMessage}, e.Messages)
	assert.Empty(t, logger.warns)
	assert.Len(t, logger.debugs, 1)
}

func TestClassify_DecodedGraphQLErrors(t *testing.T) {
	list := []interface{}{
		map[string]interface{}{
			"message":    "Field 'foo' doesn't exist",
			"extensions": map[string]interface{}{"code": "undefinedField"},
		},
		map[string]interface{}{"message": "second", "code": "other"},
	}

	e := Classify(GraphQLEnvelope, 422, list, nil)

	assert.Equal(t, []string{"Field 'foo' doesn't exist", "second"}, e.Messages)
	details := e.Attributes[BaseAttribute]
	require.Len(t, details, 2)
	assert.Equal(t, "undefinedField", details[0].Code)
	assert.Equal(t, "other", details[1].Code)
	assert.NotEmpty(t, e.Raw)
	assertConsistent(t, e)
}

func TestClassify_EmptyMessagesAreDropped(t *testing.T) {
	body := `{"errors":["", {"attribute":"title","message":"","error":"blank"}, "kept"]}`

	e := Classify(HTTPFailure, 422, body, nil)

	assert.Equal(t, []string{"kept"}, e.Messages)
	assert.Empty(t, e.Attributes["title"])
	assertConsistent(t, e)
}

func TestClassify_NothingUsableFallsBackToGeneric(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"nil body", nil},
		{"only empty strings", `[""]`},
		{"empty error string", `{"error":""}`},
		{"unrelated object", `{"status":"failed"}`},
		{"errors not a list", `{"errors":"nope"}`},
		{"number elements", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(HTTPFailure, 400, tt.body, nil)
			assert.Equal(t, []string{GenericErrorMessage}, e.Messages)
			assertConsistent(t, e)
		})
	}
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	e := NewTransportError(cause, nil)

	assert.Equal(t, 0, e.StatusCode)
	assert.Equal(t, TransportFailure, e.Kind)
	assert.Equal(t, "network_error", e.Code())
	assert.ErrorIs(t, e, cause)
	assert.ErrorIs(t, e, ErrNetwork)
	assert.Contains(t, e.Error(), "connection refused")
	assertConsistent(t, e)
}

func TestRequestError_IsSentinels(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{400, ErrBadRequest},
		{422, ErrUnprocessable},
		{500, ErrServerError},
		{525, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := error(Classify(HTTPFailure, tt.status, "", nil))
			wrapped := fmt.Errorf("failed to get books: %w", err)

			assert.ErrorIs(t, wrapped, tt.target)
			assert.False(t, errors.Is(wrapped, ErrNetwork))
		})
	}
}

func TestRequestError_ErrorString(t *testing.T) {
	e := Classify(HTTPFailure, 404, `{"error":"Article not found"}`, nil)

	assert.Equal(t, "request failed with status 404 (Not Found): Article not found", e.Error())
	assert.Equal(t, "not_found", e.Code())

	gql := Classify(GraphQLEnvelope, 422, []interface{}{"boom"}, nil)
	assert.Equal(t, "graphql_error (422): boom", gql.Error())
}

func TestAsRequestError(t *testing.T) {
	e := Classify(HTTPFailure, 500, "", nil)

	got, ok := AsRequestError(fmt.Errorf("wrapped: %w", e))
	require.True(t, ok)
	assert.Same(t, e, got)

	_, ok = AsRequestError(errors.New("plain"))
	assert.False(t, ok)
}

func TestRequestError_FieldErrors(t *testing.T) {
	e := Classify(HTTPFailure, 422, `["base problem"]`, nil)

	assert.Len(t, e.FieldErrors(""), 1)
	assert.Empty(t, e.FieldErrors("title"))
}
