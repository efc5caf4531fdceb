package identity

import (
	"context"
	"errors"
	"strings"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
)

// Processor applies identity events to the local verification facts.
// Invalid events fail with apperr.ErrInvalid and should not be redelivered.
type Processor struct {
	writer  Writer
	logger  logx.Logger
	factory *actionFactory
}

// NewProcessor creates a Processor writing through w.
func NewProcessor(w Writer, logger logx.Logger) *Processor {
	logger = logx.OrNop(logger)
	p := &Processor{writer: w, logger: logger}
	p.factory = &actionFactory{
		byType: map[string]actionFunc{
			DriverRegistered:          p.onDriverRegistered,
			DriverVerified:            p.onDriverVerified,
			DriverRevoked:             p.onDriverRevoked,
			DriverVehicleRegistered:   p.onDriverVehicleRegistered,
			OwnerDispatcherRegistered: p.onOwnerDispatcherRegistered,
			OwnerDispatcherVerified:   p.onOwnerDispatcherVerified,
			OwnerDispatcherRevoked:    p.onOwnerDispatcherRevoked,
		},
	}
	return p
}

// Handle processes a single identity Event. Unknown event types are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("identity event ignored", logx.String("type", e.Type))
		return nil
	}
	if e.UserID <= 0 {
		return apperr.Invalidf("event %s: user id is required", e.Type)
	}
	return fn(ctx, e)
}

func (p *Processor) onDriverRegistered(ctx context.Context, e Event) error {
	return p.writer.UpsertDriver(ctx, domain.Driver{UserID: e.UserID, IsVerified: e.Verified})
}

func (p *Processor) onDriverVerified(ctx context.Context, e Event) error {
	if err := p.writer.UpsertDriver(ctx, domain.Driver{UserID: e.UserID, IsVerified: true}); err != nil {
		return err
	}
	p.logger.Info("driver verified", logx.Int64("user_id", e.UserID))
	return nil
}

func (p *Processor) onDriverRevoked(ctx context.Context, e Event) error {
	found, err := p.writer.SetDriverVerified(ctx, e.UserID, false)
	if err != nil {
		return err
	}
	if !found {
		p.logger.Warn("revoke for unknown driver", logx.Int64("user_id", e.UserID))
		return nil
	}
	p.logger.Info("driver revoked", logx.Int64("user_id", e.UserID))
	return nil
}

// onDriverVehicleRegistered stores the vehicle under the provider's id. A vehicle of an
// unknown driver or with a plate held by another vehicle can never apply.
func (p *Processor) onDriverVehicleRegistered(ctx context.Context, e Event) error {
	v := domain.Vehicle{
		ID:          e.VehicleID,
		DriverID:    e.UserID,
		PlateNumber: strings.TrimSpace(e.PlateNumber),
		Capacity:    e.Capacity,
	}
	if err := v.Validate(); err != nil {
		return apperr.Invalidf("event %s: %s", e.Type, apperr.Message(err, "invalid vehicle"))
	}

	found, err := p.writer.UpsertVehicle(ctx, v)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.Invalidf("event %s: %s", e.Type, apperr.Message(err, "vehicle conflict"))
		}
		return err
	}
	if !found {
		return apperr.Invalidf("event %s: unknown driver %d", e.Type, e.UserID)
	}
	p.logger.Info("vehicle registered",
		logx.Int64("user_id", e.UserID),
		logx.Int64("vehicle_id", v.ID),
	)
	return nil
}

func (p *Processor) onOwnerDispatcherRegistered(ctx context.Context, e Event) error {
	role, err := parseRole(e)
	if err != nil {
		return err
	}
	return p.writer.UpsertOwnerDispatcher(ctx, domain.OwnerDispatcher{
		UserID:     e.UserID,
		Role:       role,
		IsVerified: e.Verified,
	})
}

// onOwnerDispatcherVerified registers the account when the event names a role,
// otherwise it only flips the flag of a known account.
func (p *Processor) onOwnerDispatcherVerified(ctx context.Context, e Event) error {
	if strings.TrimSpace(e.Role) != "" {
		role, err := parseRole(e)
		if err != nil {
			return err
		}
		if err := p.writer.UpsertOwnerDispatcher(ctx, domain.OwnerDispatcher{
			UserID:     e.UserID,
			Role:       role,
			IsVerified: true,
		}); err != nil {
			return err
		}
	} else {
		found, err := p.writer.SetOwnerDispatcherVerified(ctx, e.UserID, true)
		if err != nil {
			return err
		}
		if !found {
			return apperr.Invalidf("event %s: unknown owner-dispatcher %d without role", e.Type, e.UserID)
		}
	}
	p.logger.Info("owner-dispatcher verified", logx.Int64("user_id", e.UserID))
	return nil
}

func (p *Processor) onOwnerDispatcherRevoked(ctx context.Context, e Event) error {
	found, err := p.writer.SetOwnerDispatcherVerified(ctx, e.UserID, false)
	if err != nil {
		return err
	}
	if !found {
		p.logger.Warn("revoke for unknown owner-dispatcher", logx.Int64("user_id", e.UserID))
		return nil
	}
	p.logger.Info("owner-dispatcher revoked", logx.Int64("user_id", e.UserID))
	return nil
}

func parseRole(e Event) (domain.Role, error) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(e.Role)))
	if !role.Valid() {
		return "", apperr.Invalidf("event %s: unknown role %q", e.Type, e.Role)
	}
	return role, nil
}
