package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/agenthq/internal/model"
	"github.com/deppfellow/agenthq/internal/server"
	"github.com/deppfellow/agenthq/internal/service"
)

// ItemHandler serves the /items endpoints.
type ItemHandler struct {
	Handler
	items *service.ItemService
}

func NewItemHandler(s *server.Server, items *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler: NewHandler(s),
		items:   items,
	}
}

// ListItems handles GET /items.
func (h *ItemHandler) ListItems(c echo.Context, _ *model.ListItemsRequest) ([]model.Item, error) {
	return h.items.ListItems(c.Request().Context())
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c echo.Context, req *model.CreateItemRequest) (model.Item, error) {
	return h.items.CreateItem(c.Request().Context(), req)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c echo.Context, req *model.ItemIDRequest) (model.Item, error) {
	return h.items.GetItem(c.Request().Context(), req.ID)
}

// UpdateItem handles PUT /items/:id.
func (h *ItemHandler) UpdateItem(c echo.Context, req *model.UpdateItemRequest) (model.Item, error) {
	return h.items.UpdateItem(c.Request().Context(), req)
}

// DeleteItem handles DELETE /items/:id.
func (h *ItemHandler) DeleteItem(c echo.Context, req *model.ItemIDRequest) error {
	return h.items.DeleteItem(c.Request().Context(), req.ID)
}
