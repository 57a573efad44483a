package memory

import (
	"context"
	"sync"

	"github.com/R-Theory/core-engine-client/internal/errors"
)

// Client is an in-memory store for tests and dev runs. Values survive for
// the lifetime of the process only.
type Client struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func New() *Client {
	return &Client{values: make(map[string][]byte)}
}

func (c *Client) Close() error { return nil }

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Copy to avoid external modifications
	v := make([]byte, len(value))
	copy(v, value)
	c.values[key] = v
	return nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	if !ok {
		return nil, errors.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
