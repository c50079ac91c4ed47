// Package codec provides encoding and decoding of request and response
// bodies for handlers built on the fitpulse framework.
package codec

import (
	"encoding/json"
	"net/http"

	"github.com/fitpulse/fitpulse-api/pkg/common"
)

// DecodeJSON deserializes a request body into a value of type T.
// A missing or malformed body yields a 400 HTTPError, so handlers can
// return the error as-is and let the boundary shape the response.
func DecodeJSON[T any](req *common.Request) (T, error) {
	var data T
	if req.Body == "" {
		return data, common.NewHTTPError(http.StatusBadRequest, "request body is required")
	}
	if err := json.Unmarshal([]byte(req.Body), &data); err != nil {
		return data, common.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return data, nil
}

// EncodeJSON serializes v into a response with the given status and the
// default JSON content type.
func EncodeJSON(statusCode int, v any) (*common.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return common.NewResponse(statusCode, string(body)), nil
}
