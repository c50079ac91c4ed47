// Package router provides the routing and dispatch core shared by every
// fitpulse backend function: an ordered route table over compiled path
// patterns, per-request middleware chain composition, and the single
// boundary where structural and unexpected failures become responses.
package router

import (
	"errors"
	"net/http"

	"github.com/fitpulse/fitpulse-api/pkg/common"
	"github.com/fitpulse/fitpulse-api/pkg/middleware"
	"go.uber.org/zap"
)

// Route is one (method, pattern, handler) registration. Routes are
// created during construction and immutable afterward.
type Route struct {
	Method  string
	Matcher *PathMatcher
	Handler common.Handler
}

// Router owns the route table and the global middleware stack. Build it
// once at cold start; dispatch reads only immutable state, so concurrent
// invocations need no locking.
type Router struct {
	logger      *zap.Logger
	cors        *middleware.CORSConfig
	corsEnabled bool
	routes      []Route
	middlewares common.MiddlewareChain
	notFound    common.Handler
}

// New creates a Router with the given configuration.
func New(config RouterConfig) *Router {
	logger := config.Logger
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			logger = zap.NewNop()
		}
	}

	cors := config.CORS
	if cors == nil {
		cors = middleware.DefaultCORSConfig()
	}

	return &Router{
		logger:      logger,
		cors:        cors,
		corsEnabled: !config.DisableDefaultCORS,
		middlewares: common.NewMiddlewareChain(config.Middlewares...),
	}
}

// Register appends a route to the table. Registration order is the
// disambiguation rule: when two patterns could both match a path, the
// first registered wins. No uniqueness check is performed; a pattern
// registered twice for the same method simply makes the second
// registration unreachable.
func (r *Router) Register(method, pattern string, handler common.Handler) {
	r.routes = append(r.routes, Route{
		Method:  method,
		Matcher: CompilePattern(pattern),
		Handler: handler,
	})
}

// Use appends middleware to the global stack, inside whatever was
// appended before it.
func (r *Router) Use(middlewares ...common.Middleware) {
	r.middlewares = r.middlewares.Append(middlewares...)
}

// SetNotFound registers the handler invoked, still through the full
// middleware chain, when no route matches. Without one, an unmatched
// request becomes a generic 404 at the boundary.
func (r *Router) SetNotFound(handler common.Handler) {
	r.notFound = handler
}

// Dispatch runs one invocation through the pipeline and always returns
// a response: every failure class is converted at this boundary.
//
// Preflight (OPTIONS) requests are answered immediately from the CORS
// configuration, bypassing route selection and authentication, so
// browser preflight checks never require a credential.
func (r *Router) Dispatch(req *common.Request) *common.Response {
	if req.Method == http.MethodOptions {
		return middleware.PreflightResponse(r.cors)
	}

	route, params := r.selectRoute(req.Method, req.Path)
	if route == nil && r.notFound == nil {
		return r.errorResponse(req, &RouteNotFoundError{Method: req.Method, Path: req.Path})
	}

	var terminal common.Handler
	if route != nil {
		req = req.WithParams(route.Matcher.Pattern(), params)
		terminal = route.Handler
	} else {
		terminal = r.notFound
	}

	resp, err := r.chain().ThenHandler(terminal)(req)
	if err != nil {
		return r.errorResponse(req, err)
	}
	if resp == nil {
		return r.errorResponse(req, errors.New("handler returned no response"))
	}
	return resp
}

// Finalize returns the invocation entrypoint handed to the hosting
// boundary. Registration is expected to be complete before Finalize;
// the returned function reads only immutable router state.
func (r *Router) Finalize() func(*common.Request) *common.Response {
	return r.Dispatch
}

// selectRoute scans the table in registration order and returns the
// first route whose method and matcher accept the request, with the
// extracted path parameters. Selection is a pure function of the table
// and the two keys.
func (r *Router) selectRoute(method, path string) (*Route, map[string]string) {
	for i := range r.routes {
		route := &r.routes[i]
		if route.Method != method {
			continue
		}
		if params, ok := route.Matcher.Matches(path); ok {
			return route, params
		}
	}
	return nil, nil
}

// chain builds the per-request middleware chain: the implicit CORS
// layer outermost unless replaced, so its headers land even on recovered
// panics, then recovery, then the global stack.
func (r *Router) chain() common.MiddlewareChain {
	chain := common.NewMiddlewareChain(middleware.Recovery(r.logger))
	if r.corsEnabled {
		chain = chain.Prepend(middleware.CORS(r.cors))
	}
	return chain.Append(r.middlewares...)
}

// errorResponse is the single place failures become responses. Routing
// outcomes map to 404, explicit HTTPErrors keep their status, and
// anything else is logged and sanitized to a 500.
func (r *Router) errorResponse(req *common.Request, err error) *common.Response {
	var resp *common.Response

	var notFound *RouteNotFoundError
	var httpErr *common.HTTPError
	switch {
	case errors.As(err, &notFound):
		r.logger.Warn("Route not found",
			zap.String("method", notFound.Method),
			zap.String("path", notFound.Path),
		)
		resp = common.NewErrorResponse(http.StatusNotFound, "Not Found")
	case errors.As(err, &httpErr):
		r.logger.Warn("Handler error",
			zap.Int("status", httpErr.StatusCode),
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("message", httpErr.Message),
		)
		resp = common.NewErrorResponse(httpErr.StatusCode, httpErr.Message)
	default:
		r.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("path", req.Path),
		)
		resp = common.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error")
	}

	if r.corsEnabled {
		for name, value := range r.cors.Headers() {
			if _, ok := resp.Headers[name]; !ok {
				resp.SetHeader(name, value)
			}
		}
	}
	return resp
}
