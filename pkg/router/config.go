package router

import (
	"github.com/fitpulse/fitpulse-api/pkg/common"
	"github.com/fitpulse/fitpulse-api/pkg/middleware"
	"go.uber.org/zap"
)

// RouterConfig defines the global configuration for the router.
type RouterConfig struct {
	Logger *zap.Logger // Logger for all router operations; zap.NewProduction if nil

	// CORS is the header set applied by the implicit outermost CORS
	// layer and used to answer preflight requests.
	// middleware.DefaultCORSConfig is used when nil. Set
	// DisableDefaultCORS to replace the implicit layer with middleware
	// of your own.
	CORS               *middleware.CORSConfig
	DisableDefaultCORS bool

	// Middlewares are applied to every dispatched route, in order,
	// inside the recovery and CORS layers.
	Middlewares []common.Middleware
}
