package httptransport

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingMiddleware returns a Middleware that logs HTTP requests and
// responses using the provided *slog.Logger. It is compatible with the
// Middleware type expected by the package:
// func(http.RoundTripper) http.RoundTripper.
//
// The middleware logs an entry before the request is sent and after the
// response is received (or when an error occurs). It records method, url,
// duration, status (when available) and the error when present.
func LoggingMiddleware(logger *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		// Use the default logger if nil was provided to avoid panics.
		logger = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &loggingRoundTripper{
			next:   next,
			logger: logger,
		}
	}
}

type loggingRoundTripper struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	l.logger.Info("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"content_type", req.Header.Get("Content-Type"),
		"content_length", req.ContentLength,
	)

	resp, err := l.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("HTTP Request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", duration,
			"error", err,
		)
		return resp, err
	}

	l.logger.Info("HTTP Response",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", duration,
	)

	return resp, nil
}
