package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/testutil/testlog"
)

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func TestRunner_MustRun_ShutdownRequested(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(rec.Logger))

	r := &Runner{runFn: func(*dig.Container) error { return context.Canceled }}
	r.MustRun(container)
	require.True(t, rec.Has("shutdown requested, exiting"))
}

func TestRunner_MustRun_StartupTimeout(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(rec.Logger))

	r := &Runner{runFn: func(*dig.Container) error { return context.DeadlineExceeded }}
	r.MustRun(container)
	require.True(t, rec.Has("startup aborted: startup timeout exceeded"))
}

func TestRunner_MustRun_PanicsOnOtherError(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(rec.Logger))

	r := &Runner{runFn: func(*dig.Container) error { return errors.New("boom") }}
	require.Panics(t, func() { r.MustRun(container) })
	require.True(t, rec.Has("run error"))
}

func TestNewRunner_DefaultFields(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	require.NotNil(t, r)
	require.NotNil(t, r.runFn)
	require.Equal(t, fmt.Sprintf("%p", run), fmt.Sprintf("%p", r.runFn))
}

func TestRun_ServesUntilContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(func() context.Context { return ctx }))
	require.NoError(t, container.Provide(rec.Logger))
	require.NoError(t, container.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		}
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(container)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, rec.Has("cargo platform listening"))
	require.True(t, rec.Has("shutting down cargo platform"))
}

func TestRun_ReturnsListenError(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, container.Provide(rec.Logger))
	require.NoError(t, container.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{Addr: "bad-address:-1", Handler: http.NewServeMux()}
	}))

	err := run(container)
	require.Error(t, err)
	require.True(t, rec.Has("listen error"))
}
