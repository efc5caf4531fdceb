package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"cargo-platform-go/internal/config"
	"cargo-platform-go/internal/gateway/refdata"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/notify"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/ports/external"
	"cargo-platform-go/internal/repository"
	"cargo-platform-go/internal/service/bid"
	"cargo-platform-go/internal/service/cargo"
	"cargo-platform-go/internal/service/confirmation"
	"cargo-platform-go/internal/service/dispatch"
	"cargo-platform-go/internal/service/identity"
	"cargo-platform-go/internal/service/tracking"
	"cargo-platform-go/internal/transport/kafka"
)

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(db *pgxpool.Pool) cargotx.Store { return repository.NewStore(db) },
		repository.NewIdentityRepo,
		repository.NewRegionRepo,
		newIdentityGate,
		newRedisClient,
		newRegionResolver,
		newNotificationProducer,
		newNotifier,
		newCargoService,
		newBidService,
		newDispatchService,
		newTrackingService,
		newConfirmationService,
	)
}

func newIdentityGate(repo *repository.IdentityRepo, logger logx.Logger) external.IdentityGate {
	return identity.NewGate(repo, logger.With(logx.Component("identity_gate")))
}

// newRedisClient returns nil when no cache URL is configured.
func newRedisClient(ctx context.Context, cfg *config.Config, logger logx.Logger) (*redis.Client, error) {
	client, err := refdata.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("refdata cache disabled")
	}
	return client, nil
}

type regionResolverIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Repo    *repository.RegionRepo
	Redis   *redis.Client      `optional:"true"`
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newRegionResolver stacks postgres lookups, transient-failure retries and the redis cache.
func newRegionResolver(in regionResolverIn) external.RegionResolver {
	logger := in.Logger.With(logx.Component("refdata"))
	rd := in.Config.RefData

	retrying := refdata.NewRetryingResolver(in.Repo, logger, in.Retries, refdata.RetryConfig{
		MaxAttempts: rd.MaxAttempts,
		BaseDelay:   rd.BaseDelay,
		MaxDelay:    rd.MaxDelay,
	})

	var cache refdata.Cache
	if in.Redis != nil {
		cache = refdata.NewRedisCache(in.Redis, in.Config.Redis.TTL)
	}
	return refdata.NewCachedResolver(retrying, cache, logger)
}

// newNotificationProducer returns nil when Kafka is not configured.
func newNotificationProducer(cfg *config.Config, logger logx.Logger) (*kafka.Producer, error) {
	return kafka.NewProducer(
		logger.With(logx.Component("kafka_producer")),
		cfg.Kafka.Brokers,
		cfg.Kafka.NotificationsTopic,
	)
}

func newNotifier(p *kafka.Producer, logger logx.Logger) external.Notifier {
	if p == nil {
		return notify.NewLogNotifier(logger.With(logx.Component("notifier")))
	}
	return notify.NewBrokerNotifier(p)
}

func newCargoService(
	store cargotx.Store,
	gate external.IdentityGate,
	regions external.RegionResolver,
	timeout operationTimeout,
	logger logx.Logger,
) *cargo.Service {
	return cargo.NewService(store, gate, regions, time.Duration(timeout), logger.With(logx.Component("cargo")))
}

type bidServiceIn struct {
	dig.In

	Store    cargotx.Store
	Gate     external.IdentityGate
	Accepted prometheus.Counter `name:"bids_accepted_total"`
	Timeout  operationTimeout
	Logger   logx.Logger
}

func newBidService(in bidServiceIn) *bid.Service {
	return bid.NewService(in.Store, in.Gate, in.Accepted, time.Duration(in.Timeout),
		in.Logger.With(logx.Component("bid")))
}

func newDispatchService(
	store cargotx.Store,
	gate external.IdentityGate,
	timeout operationTimeout,
	logger logx.Logger,
) *dispatch.Service {
	return dispatch.NewService(store, gate, time.Duration(timeout), logger.With(logx.Component("dispatch")))
}

func newTrackingService(
	store cargotx.Store,
	gate external.IdentityGate,
	timeout operationTimeout,
	logger logx.Logger,
) *tracking.Service {
	return tracking.NewService(store, gate, time.Duration(timeout), logger.With(logx.Component("tracking")))
}

type confirmationServiceIn struct {
	dig.In

	Store         cargotx.Store
	Gate          external.IdentityGate
	Notifier      external.Notifier
	Completed     prometheus.Counter     `name:"deliveries_completed_total"`
	Notifications *prometheus.CounterVec `name:"dispatcher_notifications_total"`
	Timeout       operationTimeout
	Logger        logx.Logger
}

func newConfirmationService(in confirmationServiceIn) *confirmation.Service {
	return confirmation.NewService(
		in.Store,
		in.Gate,
		in.Notifier,
		confirmation.Metrics{Completed: in.Completed, Notifications: in.Notifications},
		time.Duration(in.Timeout),
		in.Logger.With(logx.Component("confirmation")),
	)
}
