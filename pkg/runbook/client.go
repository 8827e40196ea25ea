package runbook

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eshaffer321/runbook-go/internal/auth"
	"github.com/eshaffer321/runbook-go/internal/graphql"
	"github.com/eshaffer321/runbook-go/internal/transport"
	internalTypes "github.com/eshaffer321/runbook-go/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout

	// UserAgent is the user agent string
	UserAgent = internalTypes.UserAgent
)

// Client is the Runbook API client. It holds only configuration fixed at
// construction and is safe for concurrent use.
type Client struct {
	baseURL string
	rest    restTransport
	graphql graphQLTransport
	options *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL is the Runbook site, e.g. https://docs.example.com
	BaseURL string

	// APIToken is sent as a bearer token on every request
	APIToken string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Headers are added to every request unless the request sets them
	Headers map[string]string

	// Logger for debug logging
	Logger Logger

	// Hooks for observability
	Hooks *Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Hooks provides lifecycle hooks for requests
type Hooks = internalTypes.Hooks

type restTransport interface {
	Do(ctx context.Context, req *transport.Request, mode transport.Mode, out interface{}) error
	Upload(ctx context.Context, path string, file transport.FormFile, fields map[string]string, out interface{}) error
	Download(ctx context.Context, path string, query ...transport.Param) ([]byte, error)
}

type graphQLTransport interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error
	Endpoint() string
}

// NewClient creates a new Runbook client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "options are required")
	}
	cfg := *opts

	baseURL, err := validateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = baseURL

	bearer, err := auth.NewBearer(cfg.APIToken)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	// Initialize Sentry if DSN is provided
	if cfg.SentryDSN != "" || cfg.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if cfg.SentryOptions != nil {
			sentryOpts = *cfg.SentryOptions
		}
		if cfg.SentryDSN != "" {
			sentryOpts.Dsn = cfg.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// a broken Sentry setup never blocks the client
		if err := sentry.Init(sentryOpts); err != nil && cfg.Logger != nil {
			cfg.Logger.Error("Failed to initialize Sentry", "error", err)
		}
	}

	cfg.HTTPClient = httpClient(cfg.HTTPClient, cfg.Timeout)

	transportOpts := &transport.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: cfg.HTTPClient,
		Headers:    cfg.Headers,
		Auth:       bearer,
		Logger:     cfg.Logger,
		Hooks:      cfg.Hooks,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		rest:    transport.NewRESTTransport(transportOpts),
		graphql: transport.NewGraphQLTransport(transportOpts),
		options: &cfg,
	}, nil
}

// NewClientWithToken creates a client for baseURL authenticated with token
func NewClientWithToken(baseURL, token string) (*Client, error) {
	return NewClient(&ClientOptions{
		BaseURL:  baseURL,
		APIToken: token,
	})
}

func validateBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", errors.Wrap(ErrInvalidConfig, "base URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidConfig, "base URL %q: %v", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Wrapf(ErrInvalidConfig, "base URL %q must be an absolute http(s) URL", raw)
	}
	return raw, nil
}

// httpClient returns the client to use without modifying a caller-owned one
func httpClient(c *http.Client, timeout time.Duration) *http.Client {
	if c == nil {
		c = &http.Client{Timeout: DefaultTimeout}
	} else if timeout > 0 {
		clone := *c
		c = &clone
	}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return c
}

// BaseURL returns the configured site URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the GraphQL endpoint URL
func (c *Client) Endpoint() string {
	return c.graphql.Endpoint()
}

// Request calls the JSON REST API at {base}/api/{path}.json. Body and query
// keys are sent in snake_case and response keys are returned in camelCase.
func (c *Client) Request(ctx context.Context, req *Request, out interface{}) error {
	return c.do(ctx, req, transport.ModeAPI, out)
}

// RawRequest calls {base}/api/{path} with no suffix and no key conversion
func (c *Client) RawRequest(ctx context.Context, req *Request, out interface{}) error {
	return c.do(ctx, req, transport.ModeRaw, out)
}

func (c *Client) do(ctx context.Context, req *Request, mode transport.Mode, out interface{}) error {
	start := time.Now()
	err := c.rest.Do(ctx, req, mode, out)
	if err != nil {
		c.capture(ctx, err, "rest", map[string]interface{}{
			"path":     requestPath(req),
			"method":   requestMethod(req),
			"duration": time.Since(start).String(),
		})
	}
	return err
}

// Upload posts file as multipart form data to {base}/api/{path}, along with
// any extra fields. The JSON response is returned in camelCase.
func (c *Client) Upload(ctx context.Context, path string, file FormFile, fields map[string]string, out interface{}) error {
	err := c.rest.Upload(ctx, path, file, fields, out)
	if err != nil {
		c.capture(ctx, err, "upload", map[string]interface{}{
			"path":     path,
			"filename": file.Filename,
		})
	}
	return err
}

// Download fetches a binary payload through the API proxy
func (c *Client) Download(ctx context.Context, path string, query ...Param) ([]byte, error) {
	data, err := c.rest.Download(ctx, path, query...)
	if err != nil {
		c.capture(ctx, err, "download", map[string]interface{}{
			"path": path,
		})
		return nil, err
	}
	return data, nil
}

// Execute posts a GraphQL document with its variables and unmarshals the
// response data into out. Variables and data are not case converted.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	return c.executeGraphQL(ctx, query, variables, out)
}

// Query executes one of the predefined GraphQL documents by name
func (c *Client) Query(ctx context.Context, name string, variables map[string]interface{}, out interface{}) error {
	query, ok := graphql.Lookup(name)
	if !ok {
		return errors.Wrapf(ErrQueryNotFound, "query %q", name)
	}
	return c.executeGraphQL(ctx, query, variables, out)
}

// executeGraphQL executes a GraphQL query
func (c *Client) executeGraphQL(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	start := time.Now()
	err := c.graphql.Execute(ctx, query, variables, result)
	if err != nil {
		c.capture(ctx, err, graphql.OperationName(query), map[string]interface{}{
			"query":     query,
			"variables": variables,
			"duration":  time.Since(start).String(),
		})
	}
	return err
}

// capture reports err to Sentry, preferring the hub carried by ctx
func (c *Client) capture(ctx context.Context, err error, operation string, details map[string]interface{}) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("runbook.operation", operation)
		if reqErr, ok := AsRequestError(err); ok {
			scope.SetTag("runbook.error_kind", reqErr.Kind.String())
			details["status"] = reqErr.StatusCode
			details["messages"] = reqErr.Messages
		}
		scope.SetContext("runbook", details)
		hub.CaptureException(err)
	})
}

// Close flushes any pending Sentry events
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

func requestPath(req *Request) string {
	if req == nil {
		return ""
	}
	return req.Path
}

func requestMethod(req *Request) string {
	if req == nil || req.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(req.Method)
}
