//go:generate mockgen -source=contracts.go -destination=mocks/contracts_mock.go -package=mocks

package external

import (
	"context"

	"cargo-platform-go/internal/domain"
)

// IdentityGate exposes verification facts. The workflow never writes them.
type IdentityGate interface {
	IsDriverVerified(ctx context.Context, userID int64) (bool, error)
	IsOwnerDispatcherVerified(ctx context.Context, userID int64, role domain.Role) (bool, error)
}

// RegionResolver maps an administrative unit to its region.
// Unknown units yield an error matching apperr.ErrNotFound.
type RegionResolver interface {
	RegionOf(ctx context.Context, unitID int64) (int64, error)
}

// Notifier is the fire-and-forget notification sink.
type Notifier interface {
	NotifyDeliveryCompleted(ctx context.Context, ev domain.DeliveryCompletedEvent) error
}
