package repository

import (
	"context"
	"fmt"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

// GetTrackingByCargo returns the tracking row of the cargo.
func (q *Queries) GetTrackingByCargo(ctx context.Context, cargoID int64) (*domain.Tracking, error) {
	var t domain.Tracking
	err := q.q.QueryRow(ctx, `
		SELECT id, cargo_id, driver_id, vehicle_id, current_location, status, last_updated
		FROM trackings WHERE cargo_id = $1`, cargoID,
	).Scan(&t.ID, &t.CargoID, &t.DriverID, &t.VehicleID, &t.CurrentLocation, &t.Status, &t.LastUpdated)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tracking of cargo %d: %w", cargoID, err)
	}
	return &t, nil
}

// UpsertTracking creates or replaces the tracking row of the cargo.
func (q *Queries) UpsertTracking(ctx context.Context, t *domain.Tracking) error {
	err := q.q.QueryRow(ctx, `
		INSERT INTO trackings (cargo_id, driver_id, vehicle_id, current_location, status, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (cargo_id) DO UPDATE SET
			driver_id        = EXCLUDED.driver_id,
			vehicle_id       = EXCLUDED.vehicle_id,
			current_location = EXCLUDED.current_location,
			status           = EXCLUDED.status,
			last_updated     = now()
		RETURNING id, last_updated`,
		t.CargoID, t.DriverID, t.VehicleID, t.CurrentLocation, string(t.Status),
	).Scan(&t.ID, &t.LastUpdated)
	if err != nil {
		if IsForeignKey(err) {
			return apperr.NotFound("cargo or vehicle not found")
		}
		return fmt.Errorf("upsert tracking of cargo %d: %w", t.CargoID, err)
	}
	return nil
}

// GetVehicle returns the vehicle by id.
func (q *Queries) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := q.q.QueryRow(ctx,
		`SELECT id, driver_id, plate_number, capacity FROM vehicles WHERE id = $1`, id,
	).Scan(&v.ID, &v.DriverID, &v.PlateNumber, &v.Capacity)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return &v, nil
}
