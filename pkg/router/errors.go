package router

import "fmt"

// RouteNotFoundError is the structural outcome of a dispatch for which
// no registered route matched the request's method and path. It is
// converted to a 404 at the router boundary and never propagates past it.
type RouteNotFoundError struct {
	Method string
	Path   string
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route for %s %s", e.Method, e.Path)
}
