package transport

import (
	"net/http"

	"github.com/eshaffer321/runbook-go/internal/auth"
	"github.com/eshaffer321/runbook-go/internal/types"
)

// Options for the REST and GraphQL transports
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Headers    map[string]string
	Auth       auth.Handler
	Logger     types.Logger
	Hooks      *types.Hooks
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
