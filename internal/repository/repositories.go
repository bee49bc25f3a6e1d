package repository

import (
	"github.com/deppfellow/agenthq/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Items ItemStore
}

// NewRepositories builds the repositories on top of the server's
// connection pool, adding the item cache when it is enabled.
func NewRepositories(s *server.Server) *Repositories {
	var items ItemStore = NewItemRepository(s.DB.Pool)

	if s.Config.Cache.Enabled && s.Redis != nil {
		items = NewItemCache(items, s.Redis, s.Config.Cache.TTL, s.Logger)
		s.Logger.Info().Dur("ttl", s.Config.Cache.TTL).Msg("item cache enabled")
	}

	return &Repositories{
		Items: items,
	}
}
