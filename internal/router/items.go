package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/agenthq/internal/handler"
	"github.com/deppfellow/agenthq/internal/model"
)

func registerItemRoutes(r *echo.Echo, h *handler.Handlers) {
	items := r.Group("/items")
	ih := h.Items

	items.GET("", handler.Handle(ih.Handler, ih.ListItems, http.StatusOK, &model.ListItemsRequest{}))
	items.POST("", handler.Handle(ih.Handler, ih.CreateItem, http.StatusCreated, &model.CreateItemRequest{}))

	items.GET("/:id", handler.Handle(ih.Handler, ih.GetItem, http.StatusOK, &model.ItemIDRequest{}))
	items.PUT("/:id", handler.Handle(ih.Handler, ih.UpdateItem, http.StatusOK, &model.UpdateItemRequest{}))
	items.DELETE("/:id", handler.HandleNoContent(ih.Handler, ih.DeleteItem, http.StatusNoContent, &model.ItemIDRequest{}))
}
