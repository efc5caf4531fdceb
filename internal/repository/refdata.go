package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargo-platform-go/internal/apperr"
)

// RegionRepo reads the administrative unit hierarchy.
type RegionRepo struct{ db *pgxpool.Pool }

// NewRegionRepo creates a new RegionRepo.
func NewRegionRepo(db *pgxpool.Pool) *RegionRepo { return &RegionRepo{db: db} }

// RegionOf returns the region the administrative unit belongs to.
func (r *RegionRepo) RegionOf(ctx context.Context, unitID int64) (int64, error) {
	var regionID int64
	err := r.db.QueryRow(ctx,
		`SELECT region_id FROM administrative_units WHERE id = $1`, unitID,
	).Scan(&regionID)
	if err != nil {
		if IsNotFound(err) {
			return 0, apperr.NotFound(fmt.Sprintf("administrative unit %d not found", unitID))
		}
		return 0, fmt.Errorf("region of unit %d: %w", unitID, err)
	}
	return regionID, nil
}
