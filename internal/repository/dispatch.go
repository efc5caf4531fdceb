package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

const dispatchColumns = `id, cargo_id, dispatcher_id, assigned_driver_id, created_at, updated_at`

func scanDispatchOrder(row pgx.Row) (*domain.DispatchOrder, error) {
	var o domain.DispatchOrder
	if err := row.Scan(&o.ID, &o.CargoID, &o.DispatcherID, &o.AssignedDriverID,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// InsertDispatchOrder stores a new dispatcher order. A cargo holds at most one.
func (q *Queries) InsertDispatchOrder(ctx context.Context, o *domain.DispatchOrder) error {
	err := q.q.QueryRow(ctx, `
		INSERT INTO dispatcher_orders (cargo_id, dispatcher_id, assigned_driver_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		o.CargoID, o.DispatcherID, o.AssignedDriverID,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return apperr.Conflict("cargo already has a dispatcher order")
		case IsForeignKey(err):
			return apperr.NotFound("cargo not found")
		}
		return fmt.Errorf("insert dispatcher order: %w", err)
	}
	return nil
}

// GetDispatchOrder returns the order by id.
func (q *Queries) GetDispatchOrder(ctx context.Context, id int64) (*domain.DispatchOrder, error) {
	o, err := scanDispatchOrder(q.q.QueryRow(ctx,
		`SELECT `+dispatchColumns+` FROM dispatcher_orders WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispatcher order %d: %w", id, err)
	}
	return o, nil
}

// GetDispatchOrderByCargo returns the order attached to the cargo.
func (q *Queries) GetDispatchOrderByCargo(ctx context.Context, cargoID int64) (*domain.DispatchOrder, error) {
	o, err := scanDispatchOrder(q.q.QueryRow(ctx,
		`SELECT `+dispatchColumns+` FROM dispatcher_orders WHERE cargo_id = $1`, cargoID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispatcher order of cargo %d: %w", cargoID, err)
	}
	return o, nil
}

// UpdateDispatchOrder stores the assigned driver.
func (q *Queries) UpdateDispatchOrder(ctx context.Context, o *domain.DispatchOrder) error {
	err := q.q.QueryRow(ctx, `
		UPDATE dispatcher_orders SET assigned_driver_id = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`, o.ID, o.AssignedDriverID,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return apperr.NotFound("dispatcher order not found")
		}
		return fmt.Errorf("update dispatcher order %d: %w", o.ID, err)
	}
	return nil
}
