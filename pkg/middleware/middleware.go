package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/fitpulse/fitpulse-api/pkg/common"
	"go.uber.org/zap"
)

// Middleware is an alias for common.Middleware.
type Middleware = common.Middleware

// Chain composes multiple middlewares into one, preserving onion order:
// the first middleware is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		return common.NewMiddlewareChain(middlewares...).Then(next)(req)
	}
}

// Recovery creates a middleware that recovers from panics downstream.
// It logs the panic and returns a sanitized 500 response, so a panicking
// handler never takes the whole invocation down.
func Recovery(logger *zap.Logger) Middleware {
	return func(req *common.Request, next common.Continuation) (resp *common.Response, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("stack", string(debug.Stack())),
					zap.String("method", req.Method),
					zap.String("path", req.Path),
				)
				resp = common.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error")
				err = nil
			}
		}()

		return next(req)
	}
}

// Logging creates a middleware that logs one line per invocation with
// method, path, status, and duration, choosing the log level from the
// response status: Error for 5xx, Warn for 4xx, Info otherwise.
func Logging(logger *zap.Logger) Middleware {
	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		start := time.Now()

		resp, err := next(req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Duration("duration", time.Since(start)),
		}
		if req.Auth != nil && req.Auth.RequestID != "" {
			fields = append([]zap.Field{zap.String("request_id", req.Auth.RequestID)}, fields...)
		}

		switch {
		case err != nil:
			logger.Error("Request failed", append(fields, zap.Error(err))...)
		case resp != nil && resp.StatusCode >= 500:
			logger.Error("Server error", append(fields, zap.Int("status", resp.StatusCode))...)
		case resp != nil && resp.StatusCode >= 400:
			logger.Warn("Client error", append(fields, zap.Int("status", resp.StatusCode))...)
		default:
			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			logger.Info("Request", append(fields, zap.Int("status", status))...)
		}

		return resp, err
	}
}
