package handlers

import (
	"context"

	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/service/dispatch"
	"cargo-platform-go/internal/service/tracking"
)

// CargoUsecase is the Cargo Registry surface used over HTTP.
type CargoUsecase interface {
	Create(ctx context.Context, c *domain.Cargo) (*domain.Cargo, error)
	Get(ctx context.Context, id int64) (*domain.Cargo, error)
	List(ctx context.Context, f domain.CargoFilter) ([]domain.Cargo, error)
	Update(ctx context.Context, cargoID, requester int64, p domain.CargoPatch) (*domain.Cargo, error)
	Cancel(ctx context.Context, cargoID, requester int64) (*domain.Cargo, error)
	Delete(ctx context.Context, cargoID, requester int64) error
}

// BidUsecase is the Bid Marketplace surface used over HTTP.
type BidUsecase interface {
	Submit(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	ListForCargo(ctx context.Context, cargoID, requester int64, includeAll bool) ([]domain.Bid, error)
	Get(ctx context.Context, bidID, requester int64) (*domain.Bid, error)
	SetStatus(ctx context.Context, bidID, requester int64, status domain.BidStatus) (*domain.Bid, error)
}

// DispatchUsecase is the Dispatch Assignment surface used over HTTP.
type DispatchUsecase interface {
	Create(ctx context.Context, in dispatch.CreateInput) (*domain.DispatchOrder, error)
	Get(ctx context.Context, orderID int64) (*domain.DispatchOrder, error)
	AssignDriver(ctx context.Context, orderID, requester, driverID int64) (*domain.DispatchOrder, error)
	MarkCompleted(ctx context.Context, orderID, requester int64) (*domain.Cargo, error)
}

// TrackingUsecase is the Tracking Ledger surface used over HTTP.
type TrackingUsecase interface {
	Record(ctx context.Context, in tracking.RecordInput) (*domain.Tracking, error)
	Get(ctx context.Context, cargoID int64) (*domain.Tracking, error)
}

// ConfirmationUsecase is the Delivery Confirmation surface used over HTTP.
type ConfirmationUsecase interface {
	ConfirmByDriver(ctx context.Context, cargoID, driverID int64) (*domain.DeliveryConfirmation, error)
	ConfirmByReceiver(ctx context.Context, cargoID, receiverID int64) (*domain.DeliveryConfirmation, error)
	Get(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error)
}
