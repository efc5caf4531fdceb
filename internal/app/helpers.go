package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/repository"
)

var newPool = repository.NewPool

const (
	dbAttemptTimeout = 3 * time.Second
	dbMaxRetryDelay  = 10 * time.Second
)

// connectDbWithRetry doubles the pause after every failed attempt, capped at dbMaxRetryDelay.
func connectDbWithRetry(
	ctx context.Context,
	logger logx.Logger,
	dsn string,
	retries int,
	delay time.Duration,
) (*pgxpool.Pool, error) {
	logger = logx.OrNop(logger)

	var lastErr error
	wait := delay
	for attempt := 1; attempt <= retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, dbAttemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", attempt))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Int("attempt", attempt),
			logx.Int("retries", retries),
			logx.Duration("next_wait", wait),
			logx.Err(err),
		)
		if attempt == retries {
			break
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
		if wait *= 2; wait > dbMaxRetryDelay {
			wait = dbMaxRetryDelay
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}
