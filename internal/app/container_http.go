package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"cargo-platform-go/internal/config"
	"cargo-platform-go/internal/http/handlers"
	mw "cargo-platform-go/internal/http/middleware"
	"cargo-platform-go/internal/http/middleware/ratelimit"
	"cargo-platform-go/internal/http/pprofserver"
	"cargo-platform-go/internal/http/router"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/service/bid"
	"cargo-platform-go/internal/service/cargo"
	"cargo-platform-go/internal/service/confirmation"
	"cargo-platform-go/internal/service/dispatch"
	"cargo-platform-go/internal/service/tracking"
)

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config, logger logx.Logger) *pprofserver.Server {
		return pprofserver.New(cfg.Pprof, logger.With(logx.Component("pprof")))
	}
	baseProvider := func(l logx.Logger, pool *pgxpool.Pool) *handlers.Handlers {
		if pool == nil {
			return handlers.New(l, nil)
		}
		return handlers.New(l, pool)
	}
	return provideAll(container,
		baseProvider,
		func(l logx.Logger, s *cargo.Service) *handlers.CargoHandler { return handlers.NewCargoHandler(l, s) },
		func(l logx.Logger, s *bid.Service) *handlers.BidHandler { return handlers.NewBidHandler(l, s) },
		func(l logx.Logger, s *dispatch.Service) *handlers.DispatchHandler {
			return handlers.NewDispatchHandler(l, s)
		},
		func(l logx.Logger, s *tracking.Service) *handlers.TrackingHandler {
			return handlers.NewTrackingHandler(l, s)
		},
		func(l logx.Logger, s *confirmation.Service) *handlers.ConfirmationHandler {
			return handlers.NewConfirmationHandler(l, s)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		mw.NewHTTPMetrics,
		newRouter,
		serverProvider,
		pprofProvider,
	)
}

type routerIn struct {
	dig.In

	Logger       logx.Logger
	Base         *handlers.Handlers
	Cargo        *handlers.CargoHandler
	Bid          *handlers.BidHandler
	Dispatch     *handlers.DispatchHandler
	Tracking     *handlers.TrackingHandler
	Confirmation *handlers.ConfirmationHandler
	RateLimit    *ratelimit.Middleware
	Metrics      *mw.HTTPMetrics
	Gatherer     prometheus.Gatherer
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:       in.Logger,
		Base:         in.Base,
		Cargo:        in.Cargo,
		Bid:          in.Bid,
		Dispatch:     in.Dispatch,
		Tracking:     in.Tracking,
		Confirmation: in.Confirmation,
		RateLimit:    in.RateLimit.Handler(),
		Metrics:      in.Metrics,
		Gatherer:     in.Gatherer,
	})
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucket(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In

	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger.With(logx.Component("ratelimit")), in.Counter, in.Limiter)
}
