// Package analytics caches rendered analytics reports in Redis.
// Reports are snapshot reads that tolerate eventual consistency, so a
// short TTL trades strict freshness for not recomputing the aggregation
// on every dashboard poll.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache кэш отчетов аналитики поверх Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш с указанным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// ProviderKey ключ кэша отчета специалиста
func ProviderKey(providerID int64, period string) string {
	return fmt.Sprintf("analytics:provider:%d:%s", providerID, period)
}

// PlatformKey ключ кэша платформенного отчета
func PlatformKey(period string) string {
	return fmt.Sprintf("analytics:platform:%s", period)
}

// Get читает закэшированный отчет в dest. Возвращает false при промахе.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("analytics cache: get %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		// Битый кэш равнозначен промаху
		return false, nil
	}

	return true, nil
}

// Set сохраняет отчет с TTL кэша
func (c *Cache) Set(ctx context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("analytics cache: marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("analytics cache: set %s: %w", key, err)
	}

	return nil
}
