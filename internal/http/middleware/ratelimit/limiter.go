// Package ratelimit throttles API callers per actor or client address.
package ratelimit

import "time"

// Decision is the outcome of taking one token.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller should wait before the next token is available.
	RetryAfter time.Duration
}

// Limiter hands out tokens per key.
type Limiter interface {
	Take(key string) Decision
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter lets every request through.
type NopLimiter struct{}

// Take always allows.
func (NopLimiter) Take(string) Decision { return Decision{Allowed: true} }
