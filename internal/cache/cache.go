package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsTTL = 5 * time.Minute

// Cache stores computed per-user analytics responses in redis. A nil client
// disables caching entirely; every lookup is then a miss.
type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func StatsKey(kind, userID string) string {
	return "stats:" + kind + ":" + userID
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, statsTTL).Err(); err != nil {
		log.Printf("cache set error: %v", err)
	}
}

// InvalidateUser drops every cached stats entry for userID. Called after any
// workout mutation so stale aggregates are never served.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	keys := []string{
		StatsKey("weekly", userID),
		StatsKey("series", userID),
		StatsKey("types", userID),
		StatsKey("prediction", userID),
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
