package types

import (
	"encoding/json"
)

// Classify turns a failure signal into a RequestError. body is either the raw
// response text (string, []byte, json.RawMessage) or an already decoded value
// such as a GraphQL errors list. Text that is not JSON is kept as is; the
// parse failure is logged and classification continues.
//
// The result always carries at least one message.
func Classify(kind ErrorKind, status int, body interface{}, logger Logger) *RequestError {
	e := &RequestError{
		Kind:       kind,
		StatusCode: status,
		Messages:   []string{},
		Attributes: map[string][]ErrorDetail{},
	}

	switch b := body.(type) {
	case string:
		e.Raw = b
		e.Payload = parseBody(b, status, logger)
	case []byte:
		e.Raw = string(b)
		e.Payload = parseBody(e.Raw, status, logger)
	case json.RawMessage:
		e.Raw = string(b)
		e.Payload = parseBody(e.Raw, status, logger)
	default:
		e.Payload = b
		if raw, err := json.Marshal(b); err == nil {
			e.Raw = string(raw)
		}
	}

	e.collect(e.Payload)
	if len(e.Messages) == 0 {
		e.add("", GenericErrorMessage, GenericErrorCode)
	}
	return e
}

// NewTransportError classifies a failure where no HTTP response was obtained
func NewTransportError(err error, logger Logger) *RequestError {
	e := Classify(TransportFailure, 0, nil, logger)
	e.Err = err
	if err != nil {
		e.Raw = err.Error()
	}
	return e
}

func parseBody(raw string, status int, logger Logger) interface{} {
	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if logger != nil {
			if raw == "" {
				logger.Debug("Empty error body", "status", status)
			} else {
				logger.Warn("Failed to parse error body as JSON", "status", status, "error", err)
			}
		}
		return raw
	}
	return parsed
}

func (e *RequestError) collect(payload interface{}) {
	switch p := payload.(type) {
	case []interface{}:
		e.collectList(p)
	case map[string]interface{}:
		if list, ok := p["errors"].([]interface{}); ok {
			e.collectList(list)
			return
		}
		if msg, ok := p["error"].(string); ok {
			e.add("", msg, msg)
		}
	}
}

func (e *RequestError) collectList(list []interface{}) {
	for _, item := range list {
		switch v := item.(type) {
		case string:
			e.add("", v, v)
		case map[string]interface{}:
			attr, _ := v["attribute"].(string)
			msg, _ := v["message"].(string)
			e.add(attr, msg, detailCode(v))
		}
	}
}

// detailCode reads the error code of a structured entry: "error" for REST
// validation errors, "code" or "extensions.code" for GraphQL errors.
func detailCode(v map[string]interface{}) string {
	if code, ok := v["error"].(string); ok {
		return code
	}
	if code, ok := v["code"].(string); ok {
		return code
	}
	if ext, ok := v["extensions"].(map[string]interface{}); ok {
		if code, ok := ext["code"].(string); ok {
			return code
		}
	}
	return ""
}

func (e *RequestError) add(attr, message, code string) {
	if message == "" {
		return
	}
	if attr == "" {
		attr = BaseAttribute
	}
	e.Attributes[attr] = append(e.Attributes[attr], ErrorDetail{Message: message, Code: code})
	e.Messages = append(e.Messages, message)
}
