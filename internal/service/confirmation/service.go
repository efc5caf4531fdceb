package confirmation

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

// Metrics are the counters the service reports to. Nil fields are skipped.
type Metrics struct {
	Completed     prometheus.Counter
	Notifications *prometheus.CounterVec
}

// Service runs the dual sign-off of a delivery.
type Service struct {
	store            cargotx.Store
	gate             external.IdentityGate
	notifier         external.Notifier
	metrics          Metrics
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a confirmation Service.
func NewService(
	store cargotx.Store,
	gate external.IdentityGate,
	notifier external.Notifier,
	m Metrics,
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
		notifier:         notifier,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

type sideFunc func(ctx context.Context, tx cargotx.Repository, c *domain.Cargo, d *domain.DeliveryConfirmation) error

// ConfirmByDriver records the driver's sign-off. The driver must be bound to the cargo
// through its tracking, its dispatcher order or its accepted bid.
func (s *Service) ConfirmByDriver(ctx context.Context, cargoID, driverID int64) (*domain.DeliveryConfirmation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.gate.IsDriverVerified(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("only verified drivers can confirm delivery")
	}

	return s.confirm(ctx, cargoID, func(ctx context.Context, tx cargotx.Repository, c *domain.Cargo, d *domain.DeliveryConfirmation) error {
		bound, err := cargotx.BoundDrivers(ctx, tx, c)
		if err != nil {
			return err
		}
		if !bound[driverID] {
			return apperr.Forbidden("driver is not assigned to the cargo")
		}
		if d.DriverID != nil && *d.DriverID != driverID {
			return apperr.Forbidden("delivery was already confirmed by another driver")
		}
		d.ConfirmDriver(driverID)
		return nil
	})
}

// ConfirmByReceiver records the receiver's sign-off. The receiver is the verified owner of the cargo.
func (s *Service) ConfirmByReceiver(ctx context.Context, cargoID, receiverID int64) (*domain.DeliveryConfirmation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.gate.IsOwnerDispatcherVerified(ctx, receiverID, domain.RoleOwner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("only verified owners can confirm receipt")
	}

	return s.confirm(ctx, cargoID, func(_ context.Context, _ cargotx.Repository, c *domain.Cargo, d *domain.DeliveryConfirmation) error {
		if c.OwnerID != receiverID {
			return apperr.Forbidden("only the cargo's owner can confirm receipt")
		}
		d.ConfirmReceiver(receiverID)
		return nil
	})
}

// CheckCompletion re-evaluates a confirmation. Calling it any number of times
// completes the delivery and notifies the dispatcher at most once.
func (s *Service) CheckCompletion(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		out *domain.DeliveryConfirmation
		res settlement
	)
	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, cargoID)
		if err != nil {
			return err
		}
		d, err := tx.GetConfirmationForUpdate(ctx, cargoID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.NotFound("delivery confirmation not found")
		}
		if res, err = s.settle(ctx, tx, c, d); err != nil {
			return err
		}
		if res.changed() {
			if err := tx.UpdateConfirmation(ctx, d); err != nil {
				return err
			}
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, res)
	return out, nil
}

// Get returns the confirmation of a cargo.
func (s *Service) Get(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.store.GetConfirmation(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("delivery confirmation not found")
	}
	return d, nil
}

// confirm locks the cargo and then its confirmation, applies one side and settles the result.
func (s *Service) confirm(ctx context.Context, cargoID int64, side sideFunc) (*domain.DeliveryConfirmation, error) {
	var (
		out *domain.DeliveryConfirmation
		res settlement
	)
	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		c, err := cargotx.LockCargo(ctx, tx, cargoID)
		if err != nil {
			return err
		}
		if err := c.RequireReady(); err != nil {
			return err
		}
		if c.Status == domain.CargoStatusCancelled {
			return apperr.Conflict("cargo is cancelled")
		}
		if err := tx.EnsureConfirmation(ctx, cargoID); err != nil {
			return err
		}
		d, err := tx.GetConfirmationForUpdate(ctx, cargoID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.NotFound("delivery confirmation not found")
		}
		if err := side(ctx, tx, c, d); err != nil {
			return err
		}
		if res, err = s.settle(ctx, tx, c, d); err != nil {
			return err
		}
		if err := tx.UpdateConfirmation(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, res)
	return out, nil
}

type settlement struct {
	completed bool
	event     *domain.DeliveryCompletedEvent
}

func (r settlement) changed() bool { return r.completed || r.event != nil }

// settle applies the completion effects once both sides confirmed: timestamps,
// cargo completed, tracking delivered and the one-shot notification flag.
func (s *Service) settle(ctx context.Context, tx cargotx.Repository, c *domain.Cargo, d *domain.DeliveryConfirmation) (settlement, error) {
	var res settlement
	if d.State() != domain.ConfirmationCompleted {
		return res, nil
	}

	if d.Complete(s.now()) {
		res.completed = true
		if c.Status != domain.CargoStatusCompleted {
			if err := c.SetStatus(domain.CargoStatusCompleted); err != nil {
				return res, err
			}
			if err := tx.UpdateCargo(ctx, c); err != nil {
				return res, err
			}
		}
		t, err := tx.GetTrackingByCargo(ctx, c.ID)
		if err != nil {
			return res, err
		}
		if t != nil && t.Status != domain.TrackingStatusDelivered {
			t.Status = domain.TrackingStatusDelivered
			if err := tx.UpsertTracking(ctx, t); err != nil {
				return res, err
			}
		}
	}

	if !d.MarkDispatcherNotified() {
		return res, nil
	}
	var dispatcherID *int64
	o, err := tx.GetDispatchOrderByCargo(ctx, c.ID)
	if err != nil {
		return res, err
	}
	if o != nil {
		id := o.DispatcherID
		dispatcherID = &id
	}
	ev := domain.NewDeliveryCompletedEvent(d, dispatcherID)
	res.event = &ev
	return res, nil
}

func (s *Service) afterCommit(ctx context.Context, res settlement) {
	if res.completed {
		if s.metrics.Completed != nil {
			s.metrics.Completed.Inc()
		}
	}
	if res.event == nil {
		return
	}

	s.logger.Info("delivery completed",
		logx.String("event", "delivery_completed"),
		logx.Int64("cargo_id", res.event.CargoID),
		logx.String("event_id", res.event.EventID.String()),
	)

	result := "sent"
	if err := s.notifier.NotifyDeliveryCompleted(ctx, *res.event); err != nil {
		result = "failed"
		s.logger.Error("dispatcher notification failed",
			logx.Int64("cargo_id", res.event.CargoID),
			logx.Err(err),
		)
	}
	if s.metrics.Notifications != nil {
		s.metrics.Notifications.WithLabelValues(result).Inc()
	}
}
