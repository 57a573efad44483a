package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/R-Theory/core-engine-client/internal/errors"
)

const keyPrefix = "core-engine:"

type Client struct {
	cli *redis.Client
}

func New(ctx context.Context, url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{cli: cli}, nil
}

func (c *Client) Close() error {
	return c.cli.Close()
}

// Set stores the entry without a TTL; the session is cleared explicitly, not
// expired.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	return c.cli.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.cli.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, errors.ErrKeyNotFound
	}
	return val, err
}

func (c *Client) Delete(ctx context.Context, key string) error {
	return c.cli.Del(ctx, keyPrefix+key).Err()
}
