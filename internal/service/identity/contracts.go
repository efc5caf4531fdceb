package identity

import (
	"context"

	"cargo-platform-go/internal/domain"
)

// Reader answers verification questions.
type Reader interface {
	IsDriverVerified(ctx context.Context, userID int64) (bool, error)
	IsOwnerDispatcherVerified(ctx context.Context, userID int64, role domain.Role) (bool, error)
}

// Writer stores verification facts pushed by the identity provider.
type Writer interface {
	UpsertDriver(ctx context.Context, d domain.Driver) error
	UpsertOwnerDispatcher(ctx context.Context, o domain.OwnerDispatcher) error
	SetDriverVerified(ctx context.Context, userID int64, verified bool) (bool, error)
	SetOwnerDispatcherVerified(ctx context.Context, userID int64, verified bool) (bool, error)
	// UpsertVehicle stores the vehicle and reports whether its driver is known.
	UpsertVehicle(ctx context.Context, v domain.Vehicle) (bool, error)
}
