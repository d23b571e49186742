package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shopcartlabs/shopcart-backend/pkg/config"
)

// Client wraps the redis connection used for request rate limiting.
type Client struct {
	rdb *goredis.Client
}

func New(cfg config.RedisConfig) *Client {
	return &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rdb.Ping(pingCtx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// IncrWithTTL increments key and sets the window expiry on first hit.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// FixedWindowAllow applies a fixed-window counter to key, returning
// whether the request is allowed and how many slots remain.
func (c *Client) FixedWindowAllow(ctx context.Context, key string, limit int, window time.Duration) (bool, int64, error) {
	count, err := c.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, 0, err
	}
	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(limit), remaining, nil
}

// RateLimitKey namespaces a client identity into the current window bucket.
func RateLimitKey(scope, identity string, window time.Duration) string {
	bucket := time.Now().Unix() / int64(window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, identity, bucket)
}
