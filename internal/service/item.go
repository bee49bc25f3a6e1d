package service

import (
	"context"

	"github.com/deppfellow/agenthq/internal/model"
	"github.com/deppfellow/agenthq/internal/repository"
)

// ItemService implements the item operations on top of an ItemStore.
type ItemService struct {
	store repository.ItemStore
}

func NewItemService(store repository.ItemStore) *ItemService {
	return &ItemService{store: store}
}

// ListItems returns all items in id order; never nil.
func (s *ItemService) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *ItemService) CreateItem(ctx context.Context, req *model.CreateItemRequest) (model.Item, error) {
	return s.store.Create(ctx, req.Title, req.Description)
}

func (s *ItemService) GetItem(ctx context.Context, id int64) (model.Item, error) {
	return s.store.Get(ctx, id)
}

// UpdateItem applies only the fields present in the request.
func (s *ItemService) UpdateItem(ctx context.Context, req *model.UpdateItemRequest) (model.Item, error) {
	return s.store.Update(ctx, req.ID, req.Changes())
}

func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
