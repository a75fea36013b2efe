package httpclient

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// StaticHeaderMiddleware injects static headers into every request.
func StaticHeaderMiddleware(headers map[string]string) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		for k, v := range headers {
			r.SetHeader(k, v)
		}
		return nil
	}
}

// RequestIDMiddleware tags each request with a fresh X-Request-Id unless
// the caller already set one, so server logs correlate with client logs.
func RequestIDMiddleware() Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		if r.Header("X-Request-Id") == "" {
			r.SetHeader("X-Request-Id", uuid.NewString())
		}
		return nil
	}
}

func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		logger.Debug("http request", "method", r.Method, "path", r.Path, "task", r.TaskName)
		return nil
	}
}
