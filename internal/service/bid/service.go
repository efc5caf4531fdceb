package bid

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/ports/external"
)

// Service is the bid marketplace.
type Service struct {
	store            cargotx.Store
	gate             external.IdentityGate
	accepted         prometheus.Counter
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a bid Service.
func NewService(
	store cargotx.Store,
	gate external.IdentityGate,
	accepted prometheus.Counter,
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
		accepted:         accepted,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Submit places a bid of b.DriverID on b.CargoID.
func (s *Service) Submit(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	if b == nil {
		return nil, apperr.Invalid("bid is required")
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.gate.IsDriverVerified(ctx, b.DriverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("only verified drivers can bid")
	}

	err = s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, b.CargoID)
		if err != nil {
			return err
		}
		if err := c.RequireOpen(); err != nil {
			return err
		}
		if c.AcceptedBidID != nil {
			return apperr.Conflict("cargo already has an accepted bid")
		}
		return tx.InsertBid(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bid submitted",
		logx.String("event", "bid_submitted"),
		logx.Int64("bid_id", b.ID),
		logx.Int64("cargo_id", b.CargoID),
		logx.Int64("driver_id", b.DriverID),
	)
	return b, nil
}

// ListForCargo returns the bids of a cargo. Without includeAll only pending and rejected bids are listed.
func (s *Service) ListForCargo(ctx context.Context, cargoID, requester int64, includeAll bool) ([]domain.Bid, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.store.GetCargo(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cargo not found")
	}
	if err := s.authorize(ctx, s.store, c, requester); err != nil {
		return nil, err
	}

	statuses := domain.DefaultBidView
	if includeAll {
		statuses = nil
	}
	return s.store.ListBids(ctx, cargoID, statuses)
}

// Get returns one bid to the cargo owner or its dispatcher.
func (s *Service) Get(ctx context.Context, bidID, requester int64) (*domain.Bid, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.store.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("bid not found")
	}
	c, err := s.store.GetCargo(ctx, b.CargoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cargo not found")
	}
	if err := s.authorize(ctx, s.store, c, requester); err != nil {
		return nil, err
	}
	return b, nil
}

// SetStatus accepts or rejects a bid. Accepting claims the cargo's winning slot atomically,
// so of two concurrent accepts on one cargo exactly one succeeds.
func (s *Service) SetStatus(ctx context.Context, bidID, requester int64, status domain.BidStatus) (*domain.Bid, error) {
	if !status.Valid() {
		return nil, apperr.Invalidf("unknown bid status %q", status)
	}
	if status == domain.BidStatusPending {
		return nil, apperr.Invalid("bid cannot be moved back to pending")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		out      *domain.Bid
		accepted bool
	)
	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		b, err := tx.GetBid(ctx, bidID)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("bid not found")
		}
		c, err := cargotx.LockCargo(ctx, tx, b.CargoID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, tx, c, requester); err != nil {
			return err
		}

		// re-read under the cargo lock
		b, err = tx.GetBid(ctx, bidID)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("bid not found")
		}
		changed, err := b.ChangeStatus(status)
		if err != nil {
			return err
		}
		out = b
		if !changed {
			return nil
		}

		if status == domain.BidStatusAccepted {
			if err := c.RequireOpen(); err != nil {
				return err
			}
			won, err := tx.ClaimWinningBid(ctx, c.ID, b.ID)
			if err != nil {
				return err
			}
			if !won {
				return apperr.Conflict("another bid was already accepted for this cargo")
			}
			accepted = true
		}
		return tx.UpdateBidStatus(ctx, b.ID, b.Status)
	})
	if err != nil {
		return nil, err
	}

	if accepted {
		if s.accepted != nil {
			s.accepted.Inc()
		}
		s.logger.Info("bid accepted",
			logx.String("event", "bid_accepted"),
			logx.Int64("bid_id", out.ID),
			logx.Int64("cargo_id", out.CargoID),
			logx.Int64("driver_id", out.DriverID),
		)
	}
	return out, nil
}

// authorize lets the owner and the dispatcher of the cargo's order act on its bids.
func (s *Service) authorize(ctx context.Context, r cargotx.DispatchRepository, c *domain.Cargo, requester int64) error {
	if c.OwnerID == requester {
		return nil
	}
	ok, err := cargotx.IsDelegate(ctx, r, c.ID, requester)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("only the cargo owner or its dispatcher can manage bids")
	}
	return nil
}
