package repository

import (
	"context"
	"fmt"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

// EnsureConfirmation creates an empty confirmation for the cargo if none exists.
func (q *Queries) EnsureConfirmation(ctx context.Context, cargoID int64) error {
	_, err := q.q.Exec(ctx, `
		INSERT INTO delivery_confirmations (cargo_id) VALUES ($1)
		ON CONFLICT (cargo_id) DO NOTHING`, cargoID)
	if err != nil {
		if IsForeignKey(err) {
			return apperr.NotFound("cargo not found")
		}
		return fmt.Errorf("ensure confirmation of cargo %d: %w", cargoID, err)
	}
	return nil
}

// GetConfirmation returns the confirmation of the cargo.
func (q *Queries) GetConfirmation(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error) {
	return q.getConfirmation(ctx, cargoID, "")
}

// GetConfirmationForUpdate returns the confirmation and holds its row lock.
func (q *Queries) GetConfirmationForUpdate(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error) {
	return q.getConfirmation(ctx, cargoID, " FOR UPDATE")
}

func (q *Queries) getConfirmation(ctx context.Context, cargoID int64, suffix string) (*domain.DeliveryConfirmation, error) {
	var d domain.DeliveryConfirmation
	err := q.q.QueryRow(ctx, `
		SELECT id, cargo_id, driver_id, is_delivered_by_driver, delivered_at,
			receiver_id, is_received_by_receiver, received_at, dispatcher_notified
		FROM delivery_confirmations WHERE cargo_id = $1`+suffix, cargoID,
	).Scan(&d.ID, &d.CargoID, &d.DriverID, &d.IsDeliveredByDriver, &d.DeliveredAt,
		&d.ReceiverID, &d.IsReceivedByReceiver, &d.ReceivedAt, &d.DispatcherNotified)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get confirmation of cargo %d: %w", cargoID, err)
	}
	return &d, nil
}

// UpdateConfirmation stores both sides of the confirmation.
func (q *Queries) UpdateConfirmation(ctx context.Context, d *domain.DeliveryConfirmation) error {
	ct, err := q.q.Exec(ctx, `
		UPDATE delivery_confirmations SET
			driver_id               = $2,
			is_delivered_by_driver  = $3,
			delivered_at            = $4,
			receiver_id             = $5,
			is_received_by_receiver = $6,
			received_at             = $7,
			dispatcher_notified     = $8
		WHERE cargo_id = $1`,
		d.CargoID, d.DriverID, d.IsDeliveredByDriver, d.DeliveredAt,
		d.ReceiverID, d.IsReceivedByReceiver, d.ReceivedAt, d.DispatcherNotified)
	if err != nil {
		return fmt.Errorf("update confirmation of cargo %d: %w", d.CargoID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("delivery confirmation not found")
	}
	return nil
}
