// Package handler is the HTTP entry point for business logic after the
// router.
//
// Handlers receive bound and validated payloads (see base.go), call the
// service layer and return the result for the response pipeline to write.
package handler

import (
	"github.com/deppfellow/agenthq/internal/server"
	"github.com/deppfellow/agenthq/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Items   *ItemHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Items:   NewItemHandler(s, services.Items),
	}
}
