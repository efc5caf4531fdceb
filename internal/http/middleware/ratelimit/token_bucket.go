package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Config stores TokenBucket settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped, 0 keeps them forever
	MaxBuckets int           // 0 means unbounded
}

// TokenBucket keeps one bucket per key.
type TokenBucket struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// NewTokenBucket normalises cfg and returns an empty limiter.
func NewTokenBucket(clock Clock, cfg Config) *TokenBucket {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucket{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Take consumes a token for key when one is available.
func (l *TokenBucket) Take(key string) Decision {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
			return Decision{RetryAfter: l.interval()}
		}
		b = &bucket{tokens: float64(l.cfg.Burst), refilled: now}
		l.buckets[key] = b
	}
	b.seen = now

	if dt := now.Sub(b.refilled); dt > 0 {
		b.tokens = math.Min(float64(l.cfg.Burst), b.tokens+dt.Seconds()*l.cfg.Rate)
		b.refilled = now
	}

	if b.tokens < 1 {
		missing := 1 - b.tokens
		return Decision{RetryAfter: time.Duration(missing / l.cfg.Rate * float64(time.Second))}
	}
	b.tokens--
	return Decision{Allowed: true}
}

// Len reports the number of live buckets.
func (l *TokenBucket) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// interval is how often idle buckets are swept. Caller holds l.mu.
func (l *TokenBucket) interval() time.Duration {
	every := time.Minute
	if half := l.cfg.TTL / 2; half > every {
		every = half
	}
	return every
}

// sweep drops idle buckets at most once per interval. Caller holds l.mu.
func (l *TokenBucket) sweep(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < l.interval() {
		return
	}
	l.lastSweep = now

	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}
