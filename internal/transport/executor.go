package transport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eshaffer321/runbook-go/internal/auth"
	"github.com/eshaffer321/runbook-go/internal/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	requestIDHeader = "X-Request-Id"
	userAgentHeader = "User-Agent"
)

// response is a fully read 2xx HTTP response
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// executor performs exactly one HTTP exchange per call. Retries are disabled
// on the underlying retryablehttp client; it is used for its rewindable
// request bodies and logging hooks.
type executor struct {
	baseURL string
	auth    auth.Handler
	headers map[string]string
	client  *retryablehttp.Client
	logger  types.Logger
	hooks   *types.Hooks
}

func newExecutor(opts *Options) *executor {
	if opts == nil {
		opts = &Options{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	headers := map[string]string{
		userAgentHeader: types.UserAgent,
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	e := &executor{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		auth:    opts.Auth,
		headers: headers,
		logger:  opts.Logger,
		hooks:   opts.Hooks,
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.RetryMax = 0
	client.CheckRetry = singleAttempt
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = nil
	if opts.Logger != nil {
		client.Logger = &retryLogger{logger: opts.Logger}
	}
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		if e.hooks != nil && e.hooks.OnRequest != nil {
			e.hooks.OnRequest(req.Context(), req)
		}
	}
	e.client = client

	return e
}

// singleAttempt never asks for another attempt. Context errors are surfaced
// so they take precedence over the transport error.
func singleAttempt(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

// url joins the base URL with an API path
func (e *executor) url(path string) string {
	return e.baseURL + "/api/" + path
}

// prepare applies the default, identification and auth headers
func (e *executor) prepare(req *http.Request) error {
	for k, v := range e.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	req.Header.Set(requestIDHeader, uuid.New().String())

	if e.auth == nil {
		return auth.ErrMissingToken
	}
	return e.auth.ApplyAuth(req)
}

// send executes req and reads the whole body. A missing response becomes a
// TransportFailure, a non-2xx response an HTTPFailure classified from the
// body text.
func (e *executor) send(ctx context.Context, req *http.Request) (*response, error) {
	if err := e.prepare(req); err != nil {
		return nil, errors.Wrap(err, "failed to authenticate request")
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	requestID := req.Header.Get(requestIDHeader)
	if e.logger != nil {
		e.logger.Debug("API request", "method", req.Method, "url", req.URL.String(), "request_id", requestID)
	}

	start := time.Now()
	resp, err := e.client.Do(retryReq)
	duration := time.Since(start)

	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		reqErr := types.NewTransportError(err, e.logger)
		if e.logger != nil {
			e.logger.Error("API request failed", "url", req.URL.String(), "request_id", requestID, "error", err)
		}
		e.onError(ctx, reqErr)
		return nil, reqErr
	}
	defer resp.Body.Close()

	if e.hooks != nil && e.hooks.OnResponse != nil {
		e.hooks.OnResponse(ctx, resp, duration)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reqErr := types.NewTransportError(errors.Wrap(err, "failed to read response"), e.logger)
		e.onError(ctx, reqErr)
		return nil, reqErr
	}

	if e.logger != nil {
		e.logger.Debug("API response", "status", resp.StatusCode, "duration", duration, "size", len(body), "request_id", requestID)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := types.Classify(types.HTTPFailure, resp.StatusCode, string(body), e.logger)
		e.onError(ctx, reqErr)
		return nil, reqErr
	}

	return &response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (e *executor) onError(ctx context.Context, err error) {
	if e.hooks != nil && e.hooks.OnError != nil {
		e.hooks.OnError(ctx, err)
	}
}

// truncateQuery truncates long queries for logging
func truncateQuery(query string) string {
	const maxLen = 100
	query = strings.TrimSpace(query)
	if len(query) <= maxLen {
		return query
	}
	return query[:maxLen] + "..."
}
