// Package event adapts API Gateway proxy events to the framework's
// request and response values and wires a finalized router into the
// Lambda runtime.
package event

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/fitpulse/fitpulse-api/pkg/common"
	"github.com/fitpulse/fitpulse-api/pkg/router"
)

// FromAPIGateway builds a pipeline request from an inbound proxy event.
// Absent fields get the documented defaults: method GET and path "/".
// Path parameters supplied by the gateway are carried over but replaced
// by the matcher's own extraction once a route matches.
func FromAPIGateway(ctx context.Context, e events.APIGatewayProxyRequest) *common.Request {
	method := e.HTTPMethod
	if method == "" {
		method = "GET"
	}
	path := e.Path
	if path == "" {
		path = "/"
	}

	req := &common.Request{
		Method:     method,
		Path:       path,
		Headers:    e.Headers,
		Query:      e.QueryStringParameters,
		PathParams: e.PathParameters,
		Body:       e.Body,
		Auth:       &common.AuthContext{RequestID: e.RequestContext.RequestID},
	}
	return req.WithContext(ctx)
}

// ToAPIGateway converts a pipeline response into the proxy event shape.
func ToAPIGateway(resp *common.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: resp.IsBase64Encoded,
	}
}

// Entrypoint finalizes the router into the function the Lambda runtime
// invokes. Dispatch never surfaces an error to the runtime: every
// failure has already been converted to a response at the boundary.
func Entrypoint(r *router.Router) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dispatch := r.Finalize()
	return func(ctx context.Context, e events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp := dispatch(FromAPIGateway(ctx, e))
		return ToAPIGateway(resp), nil
	}
}

// Start hands the finalized router to the Lambda runtime and blocks.
func Start(r *router.Router) {
	lambda.Start(Entrypoint(r))
}
