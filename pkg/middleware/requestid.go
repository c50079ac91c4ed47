package middleware

import (
	"github.com/fitpulse/fitpulse-api/pkg/common"
	"github.com/google/uuid"
)

// RequestIDHeader is the response header carrying the per-invocation id.
const RequestIDHeader = "X-Request-Id"

// RequestID creates a middleware that assigns a unique id to each
// invocation. The id is attached to the identity context travelling with
// the request, so log lines across the pipeline correlate, and echoed in
// the X-Request-Id response header. An id supplied by the caller in the
// same header, or already present on the inbound context (the gateway's
// request id), is reused.
func RequestID() Middleware {
	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		id := req.Header(RequestIDHeader)
		if id == "" && req.Auth != nil {
			id = req.Auth.RequestID
		}
		if id == "" {
			id = uuid.New().String()
		}

		ctx := &common.AuthContext{RequestID: id}
		if req.Auth != nil {
			c := *req.Auth
			c.RequestID = id
			ctx = &c
		}

		resp, err := next(req.WithAuth(ctx))
		if resp != nil {
			resp.SetHeader(RequestIDHeader, id)
		}
		return resp, err
	}
}
