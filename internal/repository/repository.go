// Package repository handles all interactions with the database.
//
// It contains the SQL for the items table and the optional Redis
// read-through cache in front of it.
package repository

import (
	"context"

	"github.com/deppfellow/agenthq/internal/model"
)

// ItemStore persists items. Lookups of a missing id return an error
// wrapping pgx.ErrNoRows and the table name (see sqlerr.WithTable).
type ItemStore interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id int64) (model.Item, error)
	Create(ctx context.Context, title string, description *string) (model.Item, error)
	Update(ctx context.Context, id int64, changes model.ItemChanges) (model.Item, error)
	Delete(ctx context.Context, id int64) error
}
