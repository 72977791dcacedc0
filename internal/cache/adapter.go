package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Ruilesser/HackTheChange2025/internal/cache/redisstore"
)

// Adapter binds a redis client to the context-free Interface, applying a
// per-operation timeout so a slow store degrades instead of stalling a
// request.
type Adapter struct {
	cli     *redisstore.Client
	timeout time.Duration
}

var _ Interface = (*Adapter)(nil)

func NewAdapter(c *redisstore.Client, timeout time.Duration) *Adapter {
	return &Adapter{cli: c, timeout: timeout}
}

func (a *Adapter) withTimeout() (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *Adapter) Get(key string) ([]byte, bool, error) {
	ctx, cancel := a.withTimeout()
	defer cancel()
	b, ok, err := a.cli.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return b, ok, nil
}

func (a *Adapter) Set(key string, val []byte, ttl time.Duration) error {
	ctx, cancel := a.withTimeout()
	defer cancel()
	if err := a.cli.Set(ctx, key, val, ttl); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

func (a *Adapter) Del(keys ...string) error {
	ctx, cancel := a.withTimeout()
	defer cancel()
	if err := a.cli.Del(ctx, keys...); err != nil {
		return fmt.Errorf("cache del %d keys: %w", len(keys), err)
	}
	return nil
}
