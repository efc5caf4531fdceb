package app

import (
	"go.uber.org/dig"

	"cargo-platform-go/internal/config"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/repository"
	"cargo-platform-go/internal/service/identity"
	"cargo-platform-go/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewIdentityRepo,
		func(repo *repository.IdentityRepo, logger logx.Logger) *identity.Processor {
			return identity.NewProcessor(repo, logger.With(logx.Component("identity_processor")))
		},
		func(p *identity.Processor) kafka.HandleFunc { return makeIdentityKafka(p) },
		newIdentityConsumer,
	)
}

// newIdentityConsumer returns nil when Kafka is not configured.
func newIdentityConsumer(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(
		logger.With(logx.Component("kafka_consumer")),
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		cfg.Kafka.IdentityTopic,
		h,
	)
}
