package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/eshaffer321/runbook-go/internal/graphql"
	"github.com/eshaffer321/runbook-go/internal/types"
	"github.com/pkg/errors"
)

const graphQLEndpoint = "graphql"

// GraphQLTransport handles GraphQL communication
type GraphQLTransport struct {
	*executor
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors json.RawMessage `json:"errors,omitempty"`
}

// NewGraphQLTransport creates a new GraphQL transport
func NewGraphQLTransport(opts *Options) *GraphQLTransport {
	return &GraphQLTransport{executor: newExecutor(opts)}
}

// Endpoint returns the GraphQL endpoint URL
func (t *GraphQLTransport) Endpoint() string {
	return t.url(graphQLEndpoint)
}

// Execute executes a GraphQL document and unmarshals its data into result.
// Variables and data are sent and returned without key conversion.
func (t *GraphQLTransport) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	if variables == nil {
		variables = map[string]interface{}{}
	}

	body, err := json.Marshal(&GraphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set(contentTypeHeader, contentTypeJSON)

	if t.logger != nil {
		t.logger.Debug("GraphQL request", "query", truncateQuery(query), "variables", variables)
	}

	resp, err := t.send(ctx, httpReq)
	if err != nil {
		return err
	}

	var gqlResp GraphQLResponse
	if err := json.Unmarshal(resp.Body, &gqlResp); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}

	if errs := envelopeErrors(gqlResp.Errors); errs != nil {
		reqErr := types.Classify(types.GraphQLEnvelope, http.StatusUnprocessableEntity, errs, t.logger)
		t.onError(ctx, reqErr)
		return reqErr
	}

	if graphql.IsMutation(query) {
		if reqErr := t.checkMutationResults(gqlResp.Data); reqErr != nil {
			t.onError(ctx, reqErr)
			return reqErr
		}
	}

	if result != nil && len(gqlResp.Data) > 0 && string(gqlResp.Data) != "null" {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal result")
		}
	}

	return nil
}

// checkMutationResults inspects every top-level field of a mutation's data
// for a non-empty errors list or success=false. Fields are checked in key
// order so the reported error is deterministic.
func (t *GraphQLTransport) checkMutationResults(data json.RawMessage) *types.RequestError {
	var fields map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &fields) != nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var item map[string]interface{}
		if json.Unmarshal(fields[k], &item) != nil || item == nil {
			// not an object
			continue
		}
		if list, ok := item["errors"].([]interface{}); ok && len(list) > 0 {
			return types.Classify(types.MutationResult, http.StatusUnprocessableEntity, list, t.logger)
		}
		if success, ok := item["success"].(bool); ok && !success {
			return types.Classify(types.MutationResult, http.StatusUnprocessableEntity, nil, t.logger)
		}
	}
	return nil
}

// envelopeErrors returns the top-level errors as a list, or nil when there
// are none. A single error object or message not wrapped in a list is
// treated as a one-entry list.
func envelopeErrors(raw json.RawMessage) []interface{} {
	if len(raw) == 0 {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	switch e := v.(type) {
	case []interface{}:
		if len(e) == 0 {
			return nil
		}
		return e
	case map[string]interface{}:
		return []interface{}{e}
	case string:
		if e == "" {
			return nil
		}
		return []interface{}{e}
	}
	return nil
}
