package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

const (
	mappingTTL   = 10 * time.Minute
	unreadKeyFmt = "notify:unread:%d"
)

// Cache keeps hot lookups in Redis: classification mappings and per-user
// unread notification counters. Every method degrades to a no-op or a miss
// when Redis is unavailable.
type Cache struct {
	client *redis.Client
}

// New constructs a cache over the shared client. A nil client disables
// caching entirely.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func mappingKey(groupID, categoryID int64, subcategoryID *int64) string {
	if subcategoryID != nil {
		return fmt.Sprintf("mapping:%d:%d:%d", groupID, categoryID, *subcategoryID)
	}
	return fmt.Sprintf("mapping:%d:%d:-", groupID, categoryID)
}

// GetMapping returns a cached mapping, or nil on miss.
func (c *Cache) GetMapping(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) *domain.ClassificationMapping {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, mappingKey(groupID, categoryID, subcategoryID)).Bytes()
	if err != nil {
		return nil
	}
	var mapping domain.ClassificationMapping
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil
	}
	return &mapping
}

// SetMapping stores a mapping lookup result.
func (c *Cache) SetMapping(ctx context.Context, groupID, categoryID int64, subcategoryID *int64, mapping *domain.ClassificationMapping) {
	if c == nil || c.client == nil || mapping == nil {
		return
	}
	raw, err := json.Marshal(mapping)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, mappingKey(groupID, categoryID, subcategoryID), raw, mappingTTL).Err()
}

// InvalidateMappings drops all cached mapping lookups. Called on any
// master-data mutation touching the mapping table.
func (c *Cache) InvalidateMappings(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "mapping:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

// GetUnreadCount returns the cached unread counter; ok is false on miss.
func (c *Cache) GetUnreadCount(ctx context.Context, userID int64) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	count, err := c.client.Get(ctx, fmt.Sprintf(unreadKeyFmt, userID)).Int64()
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetUnreadCount stores the unread counter.
func (c *Cache) SetUnreadCount(ctx context.Context, userID, count int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, fmt.Sprintf(unreadKeyFmt, userID), count, time.Hour).Err()
}

// BumpUnreadCount increments the unread counter if present.
func (c *Cache) BumpUnreadCount(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	key := fmt.Sprintf(unreadKeyFmt, userID)
	if exists, err := c.client.Exists(ctx, key).Result(); err != nil || exists == 0 {
		return
	}
	_ = c.client.Incr(ctx, key).Err()
}

// InvalidateUnreadCount drops the counter so the next read refreshes it.
func (c *Cache) InvalidateUnreadCount(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, fmt.Sprintf(unreadKeyFmt, userID)).Err()
}
