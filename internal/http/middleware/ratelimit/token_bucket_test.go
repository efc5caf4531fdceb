package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTokenBucket_BurstThenBlocksThenRefills(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	l := NewTokenBucket(clk, Config{Rate: 1, Burst: 2})

	require.True(t, l.Take("user:1").Allowed)
	require.True(t, l.Take("user:1").Allowed)

	d := l.Take("user:1")
	require.False(t, d.Allowed)
	require.Equal(t, time.Second, d.RetryAfter)

	clk.Add(400 * time.Millisecond)
	d = l.Take("user:1")
	require.False(t, d.Allowed)
	require.InDelta(t, float64(600*time.Millisecond), float64(d.RetryAfter), float64(time.Millisecond))

	clk.Add(700 * time.Millisecond)
	require.True(t, l.Take("user:1").Allowed)
	require.False(t, l.Take("user:1").Allowed)

	clk.Add(10 * time.Second)
	require.True(t, l.Take("user:1").Allowed, "refill is capped by burst")
	require.True(t, l.Take("user:1").Allowed)
	require.False(t, l.Take("user:1").Allowed)
}

func TestTokenBucket_IsPerKey(t *testing.T) {
	t.Parallel()

	l := NewTokenBucket(newFakeClock(), Config{Rate: 1, Burst: 1})

	require.True(t, l.Take("user:1").Allowed)
	require.False(t, l.Take("user:1").Allowed)
	require.True(t, l.Take("ip:10.0.0.1").Allowed)
}

func TestTokenBucket_SweepsIdleBuckets(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	l := NewTokenBucket(clk, Config{Rate: 10, Burst: 1, TTL: 2 * time.Second})

	l.Take("A")
	l.Take("B")
	require.Equal(t, 2, l.Len())

	clk.Add(59 * time.Second)
	l.Take("B")
	clk.Add(2 * time.Second)
	l.Take("B")

	require.Equal(t, 1, l.Len())
	_, hasA := l.buckets["A"]
	require.False(t, hasA)
}

func TestTokenBucket_MaxBucketsRejectsNewKeys(t *testing.T) {
	t.Parallel()

	l := NewTokenBucket(newFakeClock(), Config{Rate: 1, Burst: 1, MaxBuckets: 2})

	require.True(t, l.Take("a").Allowed)
	require.True(t, l.Take("b").Allowed)

	d := l.Take("c")
	require.False(t, d.Allowed)
	require.Equal(t, time.Minute, d.RetryAfter)
	require.Equal(t, 2, l.Len())
}

func TestTokenBucket_ConcurrentTakesNeverExceedBurst(t *testing.T) {
	t.Parallel()

	l := NewTokenBucket(newFakeClock(), Config{Rate: 1, Burst: 5})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Take("user:9").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 5, allowed)
}

func TestNewTokenBucket_NormalisesConfig(t *testing.T) {
	t.Parallel()

	l := NewTokenBucket(nil, Config{Rate: -1, Burst: 0, MaxBuckets: -3})
	require.Equal(t, Config{Rate: 1, Burst: 1}, l.cfg)
	require.IsType(t, RealClock{}, l.clock)
	require.True(t, l.Take("k").Allowed)
}
