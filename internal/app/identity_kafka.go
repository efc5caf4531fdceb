package app

import (
	"context"
	"errors"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/service/identity"
	"cargo-platform-go/internal/transport/kafka"
)

type identityHandler interface {
	Handle(ctx context.Context, e identity.Event) error
}

// makeIdentityKafka adapts the identity processor to the consumer.
// Events the processor rejects as invalid will never succeed, so they are skipped instead of redelivered.
func makeIdentityKafka(p identityHandler) kafka.HandleFunc {
	return func(ctx context.Context, e identity.Event) error {
		err := p.Handle(ctx, e)
		if err != nil && errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
