package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/agenthq/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the items API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.CheckHealth)

	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
