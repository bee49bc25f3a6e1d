package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/agenthq/internal/model"
)

const itemCachePrefix = "item:"

var errStaleFill = errors.New("item changed while filling the cache")

// versionTTL bounds how long a write version is remembered. It only has
// to outlive a single cache fill.
const versionTTL = 10 * time.Minute

// ItemCache wraps an ItemStore with a Redis read-through cache for
// single-item lookups. Redis problems are logged and never fail a
// request; the wrapped store stays the source of truth.
//
// Every update or delete bumps item:<id>:version. A fill only lands if
// the version is unchanged since before the store was read, so a row
// read before a concurrent write is never cached after it.
type ItemCache struct {
	base  ItemStore
	redis *redis.Client
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewItemCache(base ItemStore, client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *ItemCache {
	if base == nil {
		panic("repository.NewItemCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &ItemCache{
		base:  base,
		redis: client,
		ttl:   ttl,
		log:   logger,
	}
}

// List is never cached so ordering always reflects the table.
func (c *ItemCache) List(ctx context.Context) ([]model.Item, error) {
	return c.base.List(ctx)
}

func (c *ItemCache) Get(ctx context.Context, id int64) (model.Item, error) {
	if item, ok := c.load(ctx, id); ok {
		return item, nil
	}

	version, versionErr := c.version(ctx, id)

	item, err := c.base.Get(ctx, id)
	if err != nil {
		return model.Item{}, err
	}

	if versionErr == nil {
		c.store(ctx, item, version)
	}
	return item, nil
}

func (c *ItemCache) Create(ctx context.Context, title string, description *string) (model.Item, error) {
	return c.base.Create(ctx, title, description)
}

func (c *ItemCache) Update(ctx context.Context, id int64, changes model.ItemChanges) (model.Item, error) {
	item, err := c.base.Update(ctx, id, changes)
	if err != nil {
		return model.Item{}, err
	}

	c.evict(ctx, id)
	return item, nil
}

func (c *ItemCache) Delete(ctx context.Context, id int64) error {
	if err := c.base.Delete(ctx, id); err != nil {
		return err
	}

	c.evict(ctx, id)
	return nil
}

func itemKey(id int64) string {
	return itemCachePrefix + strconv.FormatInt(id, 10)
}

func versionKey(id int64) string {
	return itemKey(id) + ":version"
}

// version returns the write version of an item, 0 if it was never written.
func (c *ItemCache) version(ctx context.Context, id int64) (int64, error) {
	version, err := c.redis.Get(ctx, versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.logger(ctx).Warn().Err(err).Int64("item_id", id).Msg("item cache version read failed")
		return 0, err
	}
	return version, nil
}

// logger prefers the request-scoped logger carried by ctx.
func (c *ItemCache) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return c.log
}

func (c *ItemCache) load(ctx context.Context, id int64) (model.Item, bool) {
	data, err := c.redis.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger(ctx).Warn().Err(err).Int64("item_id", id).Msg("item cache read failed")
		}
		return model.Item{}, false
	}

	var item model.Item
	if err := json.Unmarshal(data, &item); err != nil {
		c.logger(ctx).Warn().Err(err).Int64("item_id", id).Msg("discarding undecodable cached item")
		c.evict(ctx, id)
		return model.Item{}, false
	}
	return item, true
}

func (c *ItemCache) store(ctx context.Context, item model.Item, version int64) {
	data, err := json.Marshal(item)
	if err != nil {
		c.logger(ctx).Warn().Err(err).Int64("item_id", item.ID).Msg("item cache encode failed")
		return
	}

	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey(item.ID)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, itemKey(item.ID), data, c.ttl)
			return nil
		})
		return err
	}, versionKey(item.ID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.logger(ctx).Debug().Int64("item_id", item.ID).Msg("skipping cache fill after concurrent write")
	default:
		c.logger(ctx).Warn().Err(err).Int64("item_id", item.ID).Msg("item cache write failed")
	}
}

// evict invalidates the cached row and any fill that is still in flight.
func (c *ItemCache) evict(ctx context.Context, id int64) {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(id))
		pipe.Expire(ctx, versionKey(id), versionTTL)
		pipe.Del(ctx, itemKey(id))
		return nil
	})
	if err != nil {
		c.logger(ctx).Warn().Err(err).Int64("item_id", id).Msg("item cache eviction failed")
	}
}
