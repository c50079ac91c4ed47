// Package common provides shared types and utilities used across the fitpulse framework.
package common

import (
	"context"
	"strings"
	"time"
)

// Request is a snapshot of one inbound invocation. It is owned by the
// pipeline for the duration of a single dispatch and is never shared
// across invocations.
type Request struct {
	Method     string            // HTTP method, e.g. "GET"
	Path       string            // request path, e.g. "/api/meals"
	Route      string            // matched route pattern, set by the dispatcher after route selection
	Headers    map[string]string // request headers
	Query      map[string]string // query string parameters
	PathParams map[string]string // path parameters, populated after route selection
	Body       string            // raw request body, empty if absent

	// Auth is the identity context for this invocation. It starts
	// unauthenticated; the authentication middleware attaches a
	// replacement context via WithAuth rather than mutating this one.
	Auth *AuthContext

	ctx context.Context
}

// Header returns the value of the named header, matching case-insensitively.
// API Gateway forwards headers with whatever casing the client used.
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Param returns the value of the named path parameter.
// It returns an empty string if the parameter is not present.
func (r *Request) Param(name string) string {
	return r.PathParams[name]
}

// Context returns the hosting context for this invocation.
// It never returns nil.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of the request carrying ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// WithParams returns a shallow copy of the request carrying the matched
// route pattern and the parameters the matcher extracted. Any parameters
// supplied by the hosting boundary are replaced.
func (r *Request) WithParams(route string, params map[string]string) *Request {
	r2 := *r
	r2.Route = route
	r2.PathParams = params
	return &r2
}

// WithAuth returns a shallow copy of the request carrying the given
// identity context. The original request is left untouched, preserving
// a clear before/after authentication boundary.
func (r *Request) WithAuth(auth *AuthContext) *Request {
	r2 := *r
	r2.Auth = auth
	return &r2
}

// AuthContext carries the identity and authorization attributes derived
// from the caller's credential. A zero AuthContext (no UserID) represents
// an unauthenticated invocation.
type AuthContext struct {
	RequestID   string
	UserID      string
	Email       string
	Roles       []string
	Permissions []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Custom      map[string]string
}

// Authenticated reports whether an identity has been established.
func (c *AuthContext) Authenticated() bool {
	return c != nil && c.UserID != ""
}

// HasRole reports whether the context carries the named role.
func (c *AuthContext) HasRole(role string) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether the context carries the named permission.
func (c *AuthContext) HasPermission(perm string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Response is the outcome of one invocation as it flows back out
// through the middleware chain.
type Response struct {
	StatusCode      int
	Headers         map[string]string
	Body            string
	IsBase64Encoded bool
}

// NewResponse creates a response with the default header set:
// a JSON content type. CORS headers are stamped by the CORS middleware
// so they are present even on responses built elsewhere.
func NewResponse(statusCode int, body string) *Response {
	return &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// SetHeader sets a response header, allocating the header map if needed.
func (r *Response) SetHeader(name, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[name] = value
}

// Handler is the terminal stage of a pipeline: the business logic for
// one route. Business modules are black boxes satisfying this contract.
type Handler func(req *Request, auth *AuthContext) (*Response, error)

// Continuation represents everything positioned downstream of a
// middleware: the remaining middleware and the terminal handler.
type Continuation func(req *Request) (*Response, error)

// Middleware is one pipeline stage. It may inspect or replace the
// request, short-circuit by returning a response without invoking next,
// or delegate downstream and post-process whatever next returns.
type Middleware func(req *Request, next Continuation) (*Response, error)
