// Package repotest provides an in-memory item store for tests of the
// layers above the repository.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/agenthq/internal/model"
	"github.com/deppfellow/agenthq/internal/sqlerr"
)

// MemoryStore mirrors the behavior of the PostgreSQL item repository:
// ids start at 1 and are never reused, and a missing id reports
// pgx.ErrNoRows wrapped with the items table.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.Item

	// Err, when set, is returned by every method.
	Err error

	// Gets counts calls to Get.
	Gets int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		items:  make(map[int64]model.Item),
	}
}

func notFound() error {
	return sqlerr.WithTable("items", pgx.ErrNoRows)
}

func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Gets++
	if s.Err != nil {
		return model.Item{}, s.Err
	}

	item, ok := s.items[id]
	if !ok {
		return model.Item{}, notFound()
	}
	return item, nil
}

func (s *MemoryStore) Create(ctx context.Context, title string, description *string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return model.Item{}, s.Err
	}

	item := model.Item{
		ID:          s.nextID,
		Title:       title,
		Description: copyString(description),
		CreatedAt:   time.Now().UTC(),
	}
	s.items[item.ID] = item
	s.nextID++
	return item, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, changes model.ItemChanges) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return model.Item{}, s.Err
	}

	item, ok := s.items[id]
	if !ok {
		return model.Item{}, notFound()
	}

	if changes.Title != nil {
		item.Title = *changes.Title
	}
	if changes.Description.Set {
		item.Description = changes.Description.Ptr()
	}
	s.items[id] = item
	return item, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.items[id]; !ok {
		return notFound()
	}
	delete(s.items, id)
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
