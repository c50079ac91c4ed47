package common

import (
	"encoding/json"
	"fmt"
)

// HTTPError represents an error with an explicit HTTP status code and
// message. When returned from a handler or middleware, the router
// boundary uses the status code and message to build the response,
// letting handlers control the exact error sent to clients.
type HTTPError struct {
	StatusCode int    // HTTP status code (e.g., 400, 404, 500)
	Message    string // Error message to be sent in the response body
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// NewHTTPError creates a new HTTPError with the specified status code and message.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// errorBody is the wire shape of an error response body.
type errorBody struct {
	Error string `json:"error"`
}

// NewErrorResponse builds a JSON error response with the default header set.
func NewErrorResponse(statusCode int, message string) *Response {
	body, err := json.Marshal(errorBody{Error: message})
	if err != nil {
		// A flat string field cannot fail to marshal; keep the
		// fallback anyway so the boundary never returns an empty body.
		return NewResponse(statusCode, `{"error":"internal error"}`)
	}
	return NewResponse(statusCode, string(body))
}
