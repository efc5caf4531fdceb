package cargo

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/ports/external"
)

// Service is the cargo registry.
type Service struct {
	store            cargotx.Store
	gate             external.IdentityGate
	regions          external.RegionResolver
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a cargo Service.
func NewService(
	store cargotx.Store,
	gate external.IdentityGate,
	regions external.RegionResolver,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	logger = logx.OrNop(logger)
	return &Service{
		store:            store,
		gate:             gate,
		regions:          regions,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create posts a new cargo on behalf of c.OwnerID. Status always starts as pending.
func (s *Service) Create(ctx context.Context, c *domain.Cargo) (*domain.Cargo, error) {
	if c == nil {
		return nil, apperr.Invalid("cargo is required")
	}
	c.Status = domain.CargoStatusPending
	c.AcceptedBidID = nil
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.gate.IsOwnerDispatcherVerified(ctx, c.OwnerID, domain.RoleOwner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("only verified owners can post cargo")
	}

	if err := s.checkRegions(ctx, c); err != nil {
		return nil, err
	}
	if err := s.store.InsertCargo(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("cargo created",
		logx.String("event", "cargo_created"),
		logx.Int64("cargo_id", c.ID),
		logx.Int64("owner_id", c.OwnerID),
	)
	return c, nil
}

// checkRegions resolves pickup and delivery units concurrently and compares them with the declared regions.
func (s *Service) checkRegions(ctx context.Context, c *domain.Cargo) error {
	var pickupRegion, deliveryRegion int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.regions.RegionOf(gctx, c.PickupLocationID)
		pickupRegion = r
		return err
	})
	if c.HasDeliveryRegion() {
		g.Go(func() error {
			r, err := s.regions.RegionOf(gctx, *c.DeliveryLocationID)
			deliveryRegion = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if pickupRegion != c.PickupRegionID {
		return apperr.Invalidf("pickup location %d does not belong to region %d", c.PickupLocationID, c.PickupRegionID)
	}
	if c.HasDeliveryRegion() && deliveryRegion != *c.DeliveryRegionID {
		return apperr.Invalidf("delivery location %d does not belong to region %d", *c.DeliveryLocationID, *c.DeliveryRegionID)
	}
	return nil
}

// Get returns a cargo by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Cargo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.store.GetCargo(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cargo not found")
	}
	return c, nil
}

// List returns cargos matching the filter.
func (s *Service) List(ctx context.Context, f domain.CargoFilter) ([]domain.Cargo, error) {
	if (f.Limit != nil && *f.Limit < 0) || (f.Offset != nil && *f.Offset < 0) {
		return nil, apperr.Invalid("limit and offset must not be negative")
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.Invalidf("unknown cargo status %q", *f.Status)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListCargos(ctx, f)
}

// Update applies owner edits. Status cannot be changed through it.
func (s *Service) Update(ctx context.Context, cargoID, requester int64, p domain.CargoPatch) (*domain.Cargo, error) {
	if p.Empty() {
		return nil, apperr.Invalid("nothing to update")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Cargo
	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := s.lockOwned(ctx, tx, cargoID, requester)
		if err != nil {
			return err
		}
		if err := c.RequireOpen(); err != nil {
			return err
		}
		if err := p.Apply(c); err != nil {
			return err
		}
		if err := s.checkRegions(ctx, c); err != nil {
			return err
		}
		if err := tx.UpdateCargo(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves the cargo to status on behalf of its owner.
func (s *Service) UpdateStatus(ctx context.Context, cargoID, requester int64, status domain.CargoStatus) (*domain.Cargo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Cargo
	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := s.lockOwned(ctx, tx, cargoID, requester)
		if err != nil {
			return err
		}
		if c.Status == status {
			out = c
			return nil
		}
		if err := c.SetStatus(status); err != nil {
			return err
		}
		if err := tx.UpdateCargo(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cargo status changed",
		logx.String("event", "cargo_status_changed"),
		logx.Int64("cargo_id", out.ID),
		logx.String("status", string(out.Status)),
	)
	return out, nil
}

// Cancel withdraws the cargo.
func (s *Service) Cancel(ctx context.Context, cargoID, requester int64) (*domain.Cargo, error) {
	return s.UpdateStatus(ctx, cargoID, requester, domain.CargoStatusCancelled)
}

// Delete removes the cargo together with its bids, order, tracking and confirmation.
func (s *Service) Delete(ctx context.Context, cargoID, requester int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		if _, err := s.lockOwned(ctx, tx, cargoID, requester); err != nil {
			return err
		}
		deleted, err := tx.DeleteCargo(ctx, cargoID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("cargo not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("cargo deleted", logx.String("event", "cargo_deleted"), logx.Int64("cargo_id", cargoID))
	return nil
}

func (s *Service) lockOwned(ctx context.Context, tx cargotx.Repository, cargoID, requester int64) (*domain.Cargo, error) {
	c, err := cargotx.LockCargo(ctx, tx, cargoID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != requester {
		return nil, apperr.Forbidden("only the owner can change the cargo")
	}
	return c, nil
}
