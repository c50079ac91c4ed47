package common

// MiddlewareChain represents an ordered chain of middleware.
// The first element is the outermost layer of the onion: its code before
// invoking the continuation runs first on the way in, and its code after
// the continuation returns runs last on the way out.
type MiddlewareChain []Middleware

// NewMiddlewareChain creates a new middleware chain.
func NewMiddlewareChain(middlewares ...Middleware) MiddlewareChain {
	return middlewares
}

// Append adds middleware to the end (innermost side) of the chain.
func (c MiddlewareChain) Append(middlewares ...Middleware) MiddlewareChain {
	return append(c, middlewares...)
}

// Prepend adds middleware to the beginning (outermost side) of the chain.
func (c MiddlewareChain) Prepend(middlewares ...Middleware) MiddlewareChain {
	result := make(MiddlewareChain, len(middlewares)+len(c))
	copy(result, middlewares)
	copy(result[len(middlewares):], c)
	return result
}

// Then folds the chain around a terminal continuation, from the
// last-registered middleware outward, and returns the composed
// continuation. A middleware that returns without invoking its
// continuation short-circuits everything inward of it; middleware
// outward of it still post-process the short-circuited response.
func (c MiddlewareChain) Then(terminal Continuation) Continuation {
	next := terminal
	for i := len(c) - 1; i >= 0; i-- {
		mw := c[i]
		downstream := next
		next = func(req *Request) (*Response, error) {
			return mw(req, downstream)
		}
	}
	return next
}

// ThenHandler folds the chain around a terminal handler. The handler
// receives whatever identity context is attached to the request by the
// time the innermost continuation runs.
func (c MiddlewareChain) ThenHandler(h Handler) Continuation {
	return c.Then(func(req *Request) (*Response, error) {
		return h(req, req.Auth)
	})
}
