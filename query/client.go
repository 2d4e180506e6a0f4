// Package query is a small request-scoped fetch cache. A Client is built
// per request by middleware and dropped with it, so cached data never
// crosses requests.
package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrTypeMismatch is returned when one key is fetched with two types.
var ErrTypeMismatch = errors.New("query: cached value has a different type")

type entry struct {
	value     any
	fetchedAt time.Time
}

// Client caches fetched values by key for the configured stale time.
// Safe for concurrent use.
type Client struct {
	opts  Options
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
}

// Option configures a Client.
type Option func(*Client)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty client.
func New(opts Options, o ...Option) *Client {
	c := &Client{
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, fn := range o {
		fn(c)
	}
	return c
}

// Options returns the options the client was created with.
func (c *Client) Options() Options {
	return c.opts
}

// Invalidate drops the entry for key.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len returns the number of cached entries, fresh or stale.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) fresh(key string) (any, bool) {
	if c.opts.StaleTime <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= c.opts.StaleTime {
		return nil, false
	}
	return e.value, true
}

func (c *Client) store(key string, value any) {
	if c.opts.StaleTime <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
}

// Fetch returns the fresh cached value for key or calls fn to load it.
// Concurrent fetches of one key share a single fn call. Errors are
// returned to every waiter and never cached. A nil client calls fn
// directly.
func Fetch[T any](ctx context.Context, c *Client, key string, fn func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fn(ctx)
	}

	if v, ok := c.fresh(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: key %q holds %T", ErrTypeMismatch, key, v)
	}
	return typed, nil
}
