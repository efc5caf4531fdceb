package dispatch

import (
	"context"
	"time"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/ports/external"
)

// CreateInput describes a new dispatcher order. DriverID is optional.
type CreateInput struct {
	CargoID      int64
	DispatcherID int64
	DriverID     *int64
}

// Service binds dispatchers and drivers to cargos.
type Service struct {
	store            cargotx.Store
	gate             external.IdentityGate
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a dispatch Service.
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

// Create opens the dispatcher order of a cargo and optionally assigns a driver right away.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.DispatchOrder, error) {
	if in.CargoID <= 0 {
		return nil, apperr.Invalid("cargo is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.gate.IsOwnerDispatcherVerified(ctx, in.DispatcherID, domain.RoleDispatcher)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("only verified dispatchers can open dispatcher orders")
	}
	if in.DriverID != nil {
		if err := s.requireVerifiedDriver(ctx, *in.DriverID); err != nil {
			return nil, err
		}
	}

	o := &domain.DispatchOrder{CargoID: in.CargoID, DispatcherID: in.DispatcherID}
	err = s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, in.CargoID)
		if err != nil {
			return err
		}
		if err := c.RequireOpen(); err != nil {
			return err
		}
		if err := tx.InsertDispatchOrder(ctx, o); err != nil {
			return err
		}
		if in.DriverID == nil {
			return nil
		}
		return assign(ctx, tx, c, o, *in.DriverID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("dispatcher order created",
		logx.String("event", "dispatch_order_created"),
		logx.Int64("order_id", o.ID),
		logx.Int64("cargo_id", o.CargoID),
		logx.Int64("dispatcher_id", o.DispatcherID),
	)
	return o, nil
}

// Get returns a dispatcher order by id.
func (s *Service) Get(ctx context.Context, orderID int64) (*domain.DispatchOrder, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.store.GetDispatchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("dispatcher order not found")
	}
	return o, nil
}

// AssignDriver binds a verified driver to the order and moves the cargo to in_progress.
// Repeating the same assignment changes nothing.
func (s *Service) AssignDriver(ctx context.Context, orderID, requester, driverID int64) (*domain.DispatchOrder, error) {
	if driverID <= 0 {
		return nil, apperr.Invalid("driver is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.ownedOrder(ctx, s.store, orderID, requester)
	if err != nil {
		return nil, err
	}
	if err := s.requireVerifiedDriver(ctx, driverID); err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, o.CargoID)
		if err != nil {
			return err
		}
		if o, err = s.ownedOrder(ctx, tx, orderID, requester); err != nil {
			return err
		}
		return assign(ctx, tx, c, o, driverID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("driver assigned",
		logx.String("event", "driver_assigned"),
		logx.Int64("order_id", o.ID),
		logx.Int64("cargo_id", o.CargoID),
		logx.Int64("driver_id", driverID),
	)
	return o, nil
}

// MarkCompleted completes the cargo of an order that has a driver.
func (s *Service) MarkCompleted(ctx context.Context, orderID, requester int64) (*domain.Cargo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.ownedOrder(ctx, s.store, orderID, requester)
	if err != nil {
		return nil, err
	}

	var out *domain.Cargo
	err = s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, o.CargoID)
		if err != nil {
			return err
		}
		if o, err = s.ownedOrder(ctx, tx, orderID, requester); err != nil {
			return err
		}
		if !o.HasDriver() {
			return apperr.Invalid("no driver is assigned to the order")
		}
		out = c
		if c.Status == domain.CargoStatusCompleted {
			return nil
		}
		if err := c.SetStatus(domain.CargoStatusCompleted); err != nil {
			return err
		}
		return tx.UpdateCargo(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("dispatcher order completed",
		logx.String("event", "dispatch_order_completed"),
		logx.Int64("order_id", orderID),
		logx.Int64("cargo_id", out.ID),
	)
	return out, nil
}

func (s *Service) requireVerifiedDriver(ctx context.Context, driverID int64) error {
	ok, err := s.gate.IsDriverVerified(ctx, driverID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Invalidf("driver %d is not verified", driverID)
	}
	return nil
}

func (s *Service) ownedOrder(ctx context.Context, r cargotx.DispatchRepository, orderID, requester int64) (*domain.DispatchOrder, error) {
	o, err := r.GetDispatchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("dispatcher order not found")
	}
	if o.DispatcherID != requester {
		return nil, apperr.Forbidden("only the order's dispatcher can change it")
	}
	return o, nil
}

// assign stores the driver on the order and cascades the cargo to in_progress.
// The caller holds the cargo lock.
func assign(ctx context.Context, tx cargotx.Repository, c *domain.Cargo, o *domain.DispatchOrder, driverID int64) error {
	if o.AssignedDriverID != nil && *o.AssignedDriverID == driverID {
		return nil
	}
	if err := c.RequireReady(); err != nil {
		return err
	}
	if c.Status != domain.CargoStatusInProgress {
		if err := c.SetStatus(domain.CargoStatusInProgress); err != nil {
			return err
		}
		if err := tx.UpdateCargo(ctx, c); err != nil {
			return err
		}
	}
	o.AssignedDriverID = &driverID
	return tx.UpdateDispatchOrder(ctx, o)
}
