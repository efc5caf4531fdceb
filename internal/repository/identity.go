package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

// IdentityRepo keeps the verification facts pushed by the identity collaborator.
type IdentityRepo struct{ db *pgxpool.Pool }

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(db *pgxpool.Pool) *IdentityRepo { return &IdentityRepo{db: db} }

// IsDriverVerified reports whether the user is a verified driver. Unknown users are not verified.
func (r *IdentityRepo) IsDriverVerified(ctx context.Context, userID int64) (bool, error) {
	var verified bool
	err := r.db.QueryRow(ctx,
		`SELECT is_verified FROM drivers WHERE user_id = $1`, userID,
	).Scan(&verified)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("driver %d verification: %w", userID, err)
	}
	return verified, nil
}

// IsOwnerDispatcherVerified reports whether the user is verified in the given role.
func (r *IdentityRepo) IsOwnerDispatcherVerified(ctx context.Context, userID int64, role domain.Role) (bool, error) {
	var verified bool
	err := r.db.QueryRow(ctx,
		`SELECT is_verified FROM owner_dispatchers WHERE user_id = $1 AND role = $2`, userID, string(role),
	).Scan(&verified)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("owner-dispatcher %d verification: %w", userID, err)
	}
	return verified, nil
}

// UpsertDriver registers the driver or overwrites its verification flag.
func (r *IdentityRepo) UpsertDriver(ctx context.Context, d domain.Driver) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO drivers (user_id, is_verified) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET is_verified = EXCLUDED.is_verified, updated_at = now()`,
		d.UserID, d.IsVerified)
	if err != nil {
		return fmt.Errorf("upsert driver %d: %w", d.UserID, err)
	}
	return nil
}

// UpsertOwnerDispatcher registers the account or overwrites its role and verification flag.
func (r *IdentityRepo) UpsertOwnerDispatcher(ctx context.Context, o domain.OwnerDispatcher) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO owner_dispatchers (user_id, role, is_verified) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			role        = EXCLUDED.role,
			is_verified = EXCLUDED.is_verified,
			updated_at  = now()`,
		o.UserID, string(o.Role), o.IsVerified)
	if err != nil {
		return fmt.Errorf("upsert owner-dispatcher %d: %w", o.UserID, err)
	}
	return nil
}

// SetDriverVerified flips the flag of a known driver and reports whether the driver exists.
func (r *IdentityRepo) SetDriverVerified(ctx context.Context, userID int64, verified bool) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE drivers SET is_verified = $2, updated_at = now() WHERE user_id = $1`, userID, verified)
	if err != nil {
		return false, fmt.Errorf("set driver %d verified: %w", userID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetOwnerDispatcherVerified flips the flag of a known owner-dispatcher and reports whether it exists.
func (r *IdentityRepo) SetOwnerDispatcherVerified(ctx context.Context, userID int64, verified bool) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE owner_dispatchers SET is_verified = $2, updated_at = now() WHERE user_id = $1`, userID, verified)
	if err != nil {
		return false, fmt.Errorf("set owner-dispatcher %d verified: %w", userID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpsertVehicle stores the vehicle under its provider id. Nothing is written and
// false is returned when the driver is not registered.
func (r *IdentityRepo) UpsertVehicle(ctx context.Context, v domain.Vehicle) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		INSERT INTO vehicles (id, driver_id, plate_number, capacity)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM drivers WHERE user_id = $2)
		ON CONFLICT (id) DO UPDATE SET
			driver_id    = EXCLUDED.driver_id,
			plate_number = EXCLUDED.plate_number,
			capacity     = EXCLUDED.capacity`,
		v.ID, v.DriverID, v.PlateNumber, v.Capacity)
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.Conflict("plate number is registered to another vehicle")
		}
		return false, fmt.Errorf("upsert vehicle %d: %w", v.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}
