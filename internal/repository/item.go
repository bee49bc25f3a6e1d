package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/agenthq/internal/model"
	"github.com/deppfellow/agenthq/internal/sqlerr"
)

const itemsTable = "items"

const itemColumns = "id, title, description, created_at"

// DBTX is the subset of pgxpool.Pool (or pgx.Tx) the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ItemRepository stores items in PostgreSQL.
type ItemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

// List returns every item ordered by id, so the result follows insertion order.
func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, sqlerr.WithTable(itemsTable, fmt.Errorf("querying items: %w", err))
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, sqlerr.WithTable(itemsTable, fmt.Errorf("collecting items: %w", err))
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (model.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Item{}, sqlerr.WithTable(itemsTable, fmt.Errorf("querying item %d: %w", id, err))
	}
	return collectItem(rows)
}

func (r *ItemRepository) Create(ctx context.Context, title string, description *string) (model.Item, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO items (title, description)
		VALUES (@title, @description)
		RETURNING `+itemColumns,
		pgx.NamedArgs{
			"title":       title,
			"description": description,
		})
	if err != nil {
		return model.Item{}, sqlerr.WithTable(itemsTable, fmt.Errorf("inserting item: %w", err))
	}
	return collectItem(rows)
}

// Update applies the set fields of changes. An empty change set returns
// the current row untouched.
func (r *ItemRepository) Update(ctx context.Context, id int64, changes model.ItemChanges) (model.Item, error) {
	if changes.Empty() {
		return r.Get(ctx, id)
	}

	sql, args := updateStatement(id, changes)

	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		return model.Item{}, sqlerr.WithTable(itemsTable, fmt.Errorf("updating item %d: %w", id, err))
	}
	return collectItem(rows)
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return sqlerr.WithTable(itemsTable, fmt.Errorf("deleting item %d: %w", id, err))
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.WithTable(itemsTable, pgx.ErrNoRows)
	}
	return nil
}

func updateStatement(id int64, changes model.ItemChanges) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{"id": id}
	var sets []string

	if changes.Title != nil {
		sets = append(sets, "title = @title")
		args["title"] = *changes.Title
	}
	if changes.Description.Set {
		sets = append(sets, "description = @description")
		args["description"] = changes.Description.Ptr()
	}

	sql := `UPDATE items SET ` + strings.Join(sets, ", ") + ` WHERE id = @id RETURNING ` + itemColumns
	return sql, args
}

func collectItem(rows pgx.Rows) (model.Item, error) {
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return model.Item{}, sqlerr.WithTable(itemsTable, err)
	}
	return item, nil
}
