package cache

import (
	"context"
	"fmt"
	"time"

	"ttphotos/infrastructure/configuration"
	"ttphotos/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the optional Redis client. A nil *Cache is valid and turns every
// guard into a no-op, so the service runs without Redis.
type Cache struct {
	client *redis.Client
}

// NewCache connects using the configured Redis host. It returns nil when no
// host is configured or the server is unreachable.
func NewCache(ctx context.Context) *Cache {
	conf := configuration.C.RedisClient
	if conf.Host == "" {
		logger.GetLogger().Info("Redis not configured, duplicate-trigger fast path disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", conf.Host, conf.Port),
		Username: conf.Username,
		Password: conf.Password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis unreachable, duplicate-trigger fast path disabled")
		return nil
	}
	return &Cache{client: client}
}

// NewCacheWithClient injects a client, used by tests.
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func slotKey(userID string, at time.Time) string {
	u := at.UTC()
	return fmt.Sprintf("post:%s:%s:%s", userID, u.Format("2006-01-02"), u.Format("15"))
}

// ClaimPostSlot is the SETNX fast path in front of the database slot claim.
// It returns true when the hour slot was free or the cache is unavailable;
// the database claim stays authoritative either way.
func (c *Cache) ClaimPostSlot(ctx context.Context, userID string, at time.Time) bool {
	if c == nil || c.client == nil {
		return true
	}
	ok, err := c.client.SetNX(ctx, slotKey(userID, at), "1", 2*time.Hour).Result()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis SETNX failed, falling through to database claim")
		return true
	}
	return ok
}

// ReleasePostSlot frees the hour slot after a failed attempt so the next
// trigger within the hour can retry.
func (c *Cache) ReleasePostSlot(ctx context.Context, userID string, at time.Time) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, slotKey(userID, at)).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis DEL failed")
	}
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
