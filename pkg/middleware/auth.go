package middleware

import (
	"net/http"

	"github.com/fitpulse/fitpulse-api/pkg/auth"
	"github.com/fitpulse/fitpulse-api/pkg/common"
)

// Authentication creates the mandatory first middleware of every
// service: it runs the authenticator and converts a denial into a
// terminal response instead of letting it travel as an error.
//
// A failure before an identity is established becomes a 401 with a
// deliberately generic body that does not disclose which check failed.
// A denial after the identity is established becomes a 403 carrying the
// policy's reason. On success, the replacement identity context is
// attached to the request that continues down the chain.
func Authentication(authenticator *auth.Authenticator) Middleware {
	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		result := authenticator.Authenticate(req)
		if !result.IsAuthorized {
			if result.Context == nil {
				return common.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"), nil
			}
			return common.NewErrorResponse(http.StatusForbidden, result.Error), nil
		}

		return next(req.WithAuth(result.Context))
	}
}
