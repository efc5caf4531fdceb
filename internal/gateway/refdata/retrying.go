package refdata

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the retry policy of RetryingResolver.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingResolver retries transient lookup failures with exponential backoff.
type RetryingResolver struct {
	next    Resolver
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingResolver returns nil when next is nil.
func NewRetryingResolver(next Resolver, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingResolver {
	if next == nil {
		return nil
	}
	logger = logx.OrNop(logger)
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingResolver{next: next, logger: logger, retries: retries, cfg: cfg}
}

// RegionOf implements Resolver.
func (r *RetryingResolver) RegionOf(ctx context.Context, unitID int64) (int64, error) {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		region, err := r.next.RegionOf(ctx, unitID)
		if err == nil {
			return region, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("refdata resolver retry",
			logx.Int64("unit_id", unitID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return 0, lastErr
}

// isRetryable reports whether a lookup failure is transient.
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, context.Canceled):
		return false
	case pgconn.SafeToRetry(err), pgconn.Timeout(err):
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception, 57P01..03: admin shutdown / cannot connect now
		return len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:3] == "57P")
	}
	return false
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
