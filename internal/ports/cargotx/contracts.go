package cargotx

import (
	"context"

	"cargo-platform-go/internal/domain"
)

// Getters return (nil, nil) when the row does not exist.

// CargoRepository stores cargos.
type CargoRepository interface {
	InsertCargo(ctx context.Context, c *domain.Cargo) error
	GetCargo(ctx context.Context, id int64) (*domain.Cargo, error)
	// GetCargoForUpdate locks the cargo row until the surrounding transaction ends.
	GetCargoForUpdate(ctx context.Context, id int64) (*domain.Cargo, error)
	UpdateCargo(ctx context.Context, c *domain.Cargo) error
	DeleteCargo(ctx context.Context, id int64) (bool, error)
	ListCargos(ctx context.Context, f domain.CargoFilter) ([]domain.Cargo, error)
	// ClaimWinningBid sets accepted_bid_id only if it is still empty and reports whether it did.
	ClaimWinningBid(ctx context.Context, cargoID, bidID int64) (bool, error)
}

// BidRepository stores bids.
type BidRepository interface {
	InsertBid(ctx context.Context, b *domain.Bid) error
	GetBid(ctx context.Context, id int64) (*domain.Bid, error)
	// ListBids returns every bid of the cargo when statuses is empty.
	ListBids(ctx context.Context, cargoID int64, statuses []domain.BidStatus) ([]domain.Bid, error)
	UpdateBidStatus(ctx context.Context, id int64, status domain.BidStatus) error
}

// DispatchRepository stores dispatcher orders.
type DispatchRepository interface {
	InsertDispatchOrder(ctx context.Context, o *domain.DispatchOrder) error
	GetDispatchOrder(ctx context.Context, id int64) (*domain.DispatchOrder, error)
	GetDispatchOrderByCargo(ctx context.Context, cargoID int64) (*domain.DispatchOrder, error)
	UpdateDispatchOrder(ctx context.Context, o *domain.DispatchOrder) error
}

// TrackingRepository stores the single tracking row of a cargo.
type TrackingRepository interface {
	GetTrackingByCargo(ctx context.Context, cargoID int64) (*domain.Tracking, error)
	UpsertTracking(ctx context.Context, t *domain.Tracking) error
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// ConfirmationRepository stores delivery confirmations.
type ConfirmationRepository interface {
	// EnsureConfirmation creates an empty confirmation for the cargo if none exists.
	EnsureConfirmation(ctx context.Context, cargoID int64) error
	GetConfirmation(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error)
	GetConfirmationForUpdate(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error)
	UpdateConfirmation(ctx context.Context, c *domain.DeliveryConfirmation) error
}

// Repository is the full set of workflow storage operations.
type Repository interface {
	CargoRepository
	BidRepository
	DispatchRepository
	TrackingRepository
	ConfirmationRepository
}

// Store runs reads directly and writes inside WithTx.
type Store interface {
	Runner
	Repository
}
