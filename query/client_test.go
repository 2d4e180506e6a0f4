package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurodata/site/query"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func counter(calls *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		n := calls.Add(1)
		return value + string(rune('0'+n)), nil
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := query.DefaultOptions()
	assert.Equal(t, 60*time.Second, opts.StaleTime)
	assert.False(t, opts.RefetchOnWindowFocus)

	data, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"staleTime":60000,"refetchOnWindowFocus":false}`, string(data))

	cfg := query.Config{StaleTime: time.Second, RefetchOnWindowFocus: true}
	assert.Equal(t, query.Options{StaleTime: time.Second, RefetchOnWindowFocus: true}, cfg.Options())
}

func TestFetchStaleWindow(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	c := query.New(query.DefaultOptions(), query.WithClock(clock.Now))
	ctx := context.Background()

	var calls atomic.Int32
	v, err := query.Fetch(ctx, c, "indicators", counter(&calls, "v"))
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	clock.Advance(59 * time.Second)
	v, err = query.Fetch(ctx, c, "indicators", counter(&calls, "v"))
	require.NoError(t, err)
	assert.Equal(t, "v1", v, "fresh value is served from cache")

	clock.Advance(time.Second)
	v, err = query.Fetch(ctx, c, "indicators", counter(&calls, "v"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v, "stale value is refetched")
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	c := query.New(query.DefaultOptions())
	boom := errors.New("backend down")

	_, err := query.Fetch(context.Background(), c, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := query.Fetch(context.Background(), c, "k", func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFetchZeroStaleTimeAlwaysLoads(t *testing.T) {
	t.Parallel()

	c := query.New(query.Options{})
	var calls atomic.Int32
	for range 3 {
		_, err := query.Fetch(context.Background(), c, "k", counter(&calls, "v"))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 0, c.Len())
}

func TestFetchCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	c := query.New(query.DefaultOptions())
	release := make(chan struct{})
	var calls atomic.Int32

	load := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := query.Fetch(context.Background(), c, "k", load)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestInvalidateAndClear(t *testing.T) {
	t.Parallel()

	c := query.New(query.DefaultOptions())
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = query.Fetch(ctx, c, "a", counter(&calls, "a"))
	_, _ = query.Fetch(ctx, c, "b", counter(&calls, "b"))
	assert.Equal(t, 2, c.Len())

	c.Invalidate("a")
	assert.Equal(t, 1, c.Len())
	v, _ := query.Fetch(ctx, c, "a", counter(&calls, "a"))
	assert.Equal(t, "a3", v)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestFetchTypeMismatch(t *testing.T) {
	t.Parallel()

	c := query.New(query.DefaultOptions())
	_, err := query.Fetch(context.Background(), c, "k", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	// The cached int does not satisfy string, so the loader runs again.
	s, err := query.Fetch(context.Background(), c, "k", func(context.Context) (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestClientsAreIsolated(t *testing.T) {
	t.Parallel()

	first := query.New(query.DefaultOptions())
	second := query.New(query.DefaultOptions())
	ctx := context.Background()

	_, err := query.Fetch(ctx, first, "k", func(context.Context) (string, error) { return "first", nil })
	require.NoError(t, err)

	v, err := query.Fetch(ctx, second, "k", func(context.Context) (string, error) { return "second", nil })
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestFetchWithoutClient(t *testing.T) {
	t.Parallel()

	v, err := query.Fetch(context.Background(), nil, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
