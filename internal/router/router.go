// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/agenthq/internal/handler"
	"github.com/deppfellow/agenthq/internal/middleware"
	"github.com/deppfellow/agenthq/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain
// and every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: Recover wraps everything after it, the request id must
	// exist before the logger is built, and the New Relic transaction
	// before tracing is enhanced.
	router.Use(
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerItemRoutes(router, h)

	return router
}
