// Package middleware provides a collection of pipeline middleware
// components for the fitpulse framework.
package middleware

import (
	"net/http"

	"github.com/fitpulse/fitpulse-api/pkg/common"
)

// CORSConfig defines the CORS header set stamped on every response.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
	MaxAge       string
}

// DefaultCORSConfig returns the header set used when none is configured.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-Request-Id",
		MaxAge:       "86400",
	}
}

// Headers returns the configured values as response headers.
func (c *CORSConfig) Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  c.AllowOrigin,
		"Access-Control-Allow-Methods": c.AllowMethods,
		"Access-Control-Allow-Headers": c.AllowHeaders,
		"Access-Control-Max-Age":       c.MaxAge,
	}
}

// PreflightResponse synthesizes the response for a browser preflight
// (OPTIONS) request. Preflights are answered before route selection and
// authentication so they never require a credential.
func PreflightResponse(config *CORSConfig) *common.Response {
	if config == nil {
		config = DefaultCORSConfig()
	}
	resp := common.NewResponse(http.StatusOK, "")
	for name, value := range config.Headers() {
		resp.SetHeader(name, value)
	}
	return resp
}

// CORS creates a middleware that stamps the configured CORS header set
// on every response flowing back out, including error responses built
// downstream. Headers already set downstream win.
func CORS(config *CORSConfig) common.Middleware {
	if config == nil {
		config = DefaultCORSConfig()
	}
	headers := config.Headers()

	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		resp, err := next(req)
		if resp == nil {
			return resp, err
		}
		for name, value := range headers {
			if _, ok := resp.Headers[name]; !ok {
				resp.SetHeader(name, value)
			}
		}
		return resp, err
	}
}
