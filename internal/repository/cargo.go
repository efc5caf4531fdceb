package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

const cargoColumns = `id, owner_id, pickup_region_id, pickup_location_id, delivery_region_id,
	delivery_location_id, cargo_type, weight, weight_unit, volume, volume_unit,
	special_requirements, transport_type, placement_method, loading_time, readiness,
	status, accepted_bid_id, created_at, updated_at`

func scanCargo(row pgx.Row) (*domain.Cargo, error) {
	var c domain.Cargo
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.PickupRegionID, &c.PickupLocationID, &c.DeliveryRegionID,
		&c.DeliveryLocationID, &c.CargoType, &c.Weight, &c.WeightUnit, &c.Volume, &c.VolumeUnit,
		&c.SpecialRequirements, &c.TransportType, &c.PlacementMethod, &c.LoadingTime, &c.Readiness,
		&c.Status, &c.AcceptedBidID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InsertCargo stores a new cargo and fills its id and timestamps.
func (q *Queries) InsertCargo(ctx context.Context, c *domain.Cargo) error {
	err := q.q.QueryRow(ctx, `
		INSERT INTO cargos (
			owner_id, pickup_region_id, pickup_location_id, delivery_region_id, delivery_location_id,
			cargo_type, weight, weight_unit, volume, volume_unit, special_requirements,
			transport_type, placement_method, loading_time, readiness, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at, updated_at`,
		c.OwnerID, c.PickupRegionID, c.PickupLocationID, c.DeliveryRegionID, c.DeliveryLocationID,
		string(c.CargoType), c.Weight, string(c.WeightUnit), c.Volume, string(c.VolumeUnit), c.SpecialRequirements,
		c.TransportType, c.PlacementMethod, c.LoadingTime, string(c.Readiness), string(c.Status),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if IsForeignKey(err) {
			return apperr.NotFound("region or location not found")
		}
		if IsCheck(err) {
			return apperr.Invalid("cargo violates a status constraint")
		}
		return fmt.Errorf("insert cargo: %w", err)
	}
	return nil
}

// GetCargo returns the cargo by id.
func (q *Queries) GetCargo(ctx context.Context, id int64) (*domain.Cargo, error) {
	return q.getCargo(ctx, id, "")
}

// GetCargoForUpdate returns the cargo and holds its row lock. Only meaningful inside a transaction.
func (q *Queries) GetCargoForUpdate(ctx context.Context, id int64) (*domain.Cargo, error) {
	return q.getCargo(ctx, id, " FOR UPDATE")
}

func (q *Queries) getCargo(ctx context.Context, id int64, suffix string) (*domain.Cargo, error) {
	c, err := scanCargo(q.q.QueryRow(ctx,
		`SELECT `+cargoColumns+` FROM cargos WHERE id = $1`+suffix, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cargo %d: %w", id, err)
	}
	return c, nil
}

// UpdateCargo overwrites every mutable column of the cargo.
func (q *Queries) UpdateCargo(ctx context.Context, c *domain.Cargo) error {
	err := q.q.QueryRow(ctx, `
		UPDATE cargos SET
			pickup_region_id     = $2,
			pickup_location_id   = $3,
			delivery_region_id   = $4,
			delivery_location_id = $5,
			cargo_type           = $6,
			weight               = $7,
			weight_unit          = $8,
			volume               = $9,
			volume_unit          = $10,
			special_requirements = $11,
			transport_type       = $12,
			placement_method     = $13,
			loading_time         = $14,
			readiness            = $15,
			status               = $16,
			accepted_bid_id      = $17,
			updated_at           = now()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.PickupRegionID, c.PickupLocationID, c.DeliveryRegionID, c.DeliveryLocationID,
		string(c.CargoType), c.Weight, string(c.WeightUnit), c.Volume, string(c.VolumeUnit),
		c.SpecialRequirements, c.TransportType, c.PlacementMethod, c.LoadingTime,
		string(c.Readiness), string(c.Status), c.AcceptedBidID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		switch {
		case IsNotFound(err):
			return apperr.NotFound("cargo not found")
		case IsForeignKey(err):
			return apperr.NotFound("region or location not found")
		case IsCheck(err):
			return apperr.Invalid("cargo violates a status constraint")
		}
		return fmt.Errorf("update cargo %d: %w", c.ID, err)
	}
	return nil
}

// DeleteCargo removes the cargo and, through cascades, everything attached to it.
func (q *Queries) DeleteCargo(ctx context.Context, id int64) (bool, error) {
	ct, err := q.q.Exec(ctx, `DELETE FROM cargos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete cargo %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListCargos returns cargos ordered by id. Nil filter fields are ignored.
func (q *Queries) ListCargos(ctx context.Context, f domain.CargoFilter) ([]domain.Cargo, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.OwnerID != nil {
		add("owner_id = $%d", *f.OwnerID)
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.PickupRegionID != nil {
		add("pickup_region_id = $%d", *f.PickupRegionID)
	}
	if f.DeliveryRegionID != nil {
		add("delivery_region_id = $%d", *f.DeliveryRegionID)
	}

	sql := `SELECT ` + cargoColumns + ` FROM cargos`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY id"
	if f.Limit != nil {
		args = append(args, *f.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset != nil {
		args = append(args, *f.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := q.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}
	defer rows.Close()

	capacity := 0
	if f.Limit != nil && *f.Limit > 0 {
		capacity = *f.Limit
	}
	out := make([]domain.Cargo, 0, capacity)
	for rows.Next() {
		c, err := scanCargo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cargo: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ClaimWinningBid sets accepted_bid_id unless another bid already holds it.
func (q *Queries) ClaimWinningBid(ctx context.Context, cargoID, bidID int64) (bool, error) {
	ct, err := q.q.Exec(ctx, `
		UPDATE cargos SET accepted_bid_id = $2, updated_at = now()
		WHERE id = $1 AND accepted_bid_id IS NULL`, cargoID, bidID)
	if err != nil {
		return false, fmt.Errorf("claim winning bid for cargo %d: %w", cargoID, err)
	}
	return ct.RowsAffected() == 1, nil
}
