package tracking

import (
	"context"
	"time"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/ports/external"
)

// RecordInput is one tracking write. Requester is the acting user.
type RecordInput struct {
	CargoID   int64
	Requester int64
	DriverID  int64
	VehicleID int64
	Location  string
	Status    domain.TrackingStatus
}

// Service keeps the tracking row of each cargo and cascades its status onto the cargo.
type Service struct {
	store            cargotx.Store
	gate             external.IdentityGate
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a tracking Service.
func NewService(store cargotx.Store, gate external.IdentityGate, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	logger = logx.OrNop(logger)
	return &Service{store: store, gate: gate, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Record writes the tracking row. The reporting driver must already be bound to the
// cargo. The cargo status is cascaded first and both writes share one transaction,
// so the cargo never disagrees with the stored tracking.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Tracking, error) {
	t := &domain.Tracking{
		CargoID:         in.CargoID,
		DriverID:        in.DriverID,
		VehicleID:       in.VehicleID,
		CurrentLocation: in.Location,
		Status:          in.Status,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.gate.IsDriverVerified(ctx, t.DriverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Invalidf("driver %d is not verified", t.DriverID)
	}

	var cargoStatus domain.CargoStatus
	err = s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, t.CargoID)
		if err != nil {
			return err
		}
		if in.Requester != t.DriverID {
			delegate, err := cargotx.IsDelegate(ctx, tx, c.ID, in.Requester)
			if err != nil {
				return err
			}
			if !delegate {
				return apperr.Forbidden("only the driver or the cargo's dispatcher can record tracking")
			}
		}
		bound, err := cargotx.BoundDrivers(ctx, tx, c)
		if err != nil {
			return err
		}
		if !bound[t.DriverID] {
			return apperr.Forbidden("driver is not assigned to the cargo")
		}

		v, err := tx.GetVehicle(ctx, t.VehicleID)
		if err != nil {
			return err
		}
		if v == nil {
			return apperr.NotFound("vehicle not found")
		}
		if v.DriverID != t.DriverID {
			return apperr.Invalid("vehicle belongs to another driver")
		}

		if err := cascade(ctx, tx, c, t.Status); err != nil {
			return err
		}
		cargoStatus = c.Status
		return tx.UpsertTracking(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tracking recorded",
		logx.String("event", "tracking_recorded"),
		logx.Int64("cargo_id", t.CargoID),
		logx.String("status", string(t.Status)),
		logx.String("cargo_status", string(cargoStatus)),
	)
	return t, nil
}

// Get returns the tracking row of a cargo.
func (s *Service) Get(ctx context.Context, cargoID int64) (*domain.Tracking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.store.GetTrackingByCargo(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("tracking not found")
	}
	return t, nil
}

// cascade maps the tracking status onto the locked cargo: in_transit -> in_progress,
// delivered -> completed, pending leaves it alone.
func cascade(ctx context.Context, tx cargotx.Repository, c *domain.Cargo, status domain.TrackingStatus) error {
	next, ok := status.CargoStatus()
	if !ok {
		return nil
	}
	if err := c.RequireReady(); err != nil {
		return err
	}
	if c.Status == next {
		return nil
	}
	if err := c.SetStatus(next); err != nil {
		return err
	}
	return tx.UpdateCargo(ctx, c)
}
