package cargotx

import (
	"context"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

// LockCargo loads the cargo under its row lock. It is the first step of every
// mutating transaction, so all writes of one cargo are serialized.
func LockCargo(ctx context.Context, tx Repository, cargoID int64) (*domain.Cargo, error) {
	c, err := tx.GetCargoForUpdate(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cargo not found")
	}
	return c, nil
}

// IsDelegate reports whether the user dispatches the cargo through its dispatcher order.
func IsDelegate(ctx context.Context, r DispatchRepository, cargoID, userID int64) (bool, error) {
	o, err := r.GetDispatchOrderByCargo(ctx, cargoID)
	if err != nil {
		return false, err
	}
	return o != nil && o.DispatcherID == userID, nil
}

// BoundDrivers collects the drivers attached to the cargo through its tracking row,
// its dispatcher order assignment or its accepted bid.
func BoundDrivers(ctx context.Context, tx Repository, c *domain.Cargo) (map[int64]bool, error) {
	bound := make(map[int64]bool, 3)

	t, err := tx.GetTrackingByCargo(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if t != nil {
		bound[t.DriverID] = true
	}

	o, err := tx.GetDispatchOrderByCargo(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if o != nil && o.AssignedDriverID != nil {
		bound[*o.AssignedDriverID] = true
	}

	if c.AcceptedBidID != nil {
		b, err := tx.GetBid(ctx, *c.AcceptedBidID)
		if err != nil {
			return nil, err
		}
		if b != nil {
			bound[b.DriverID] = true
		}
	}
	return bound, nil
}
