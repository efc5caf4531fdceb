package domain

import (
	"strings"

	"cargo-platform-go/internal/apperr"
)

// Role of an owner-dispatcher account.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleDispatcher Role = "dispatcher"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleDispatcher
}

// Driver is the verification fact of a carrier account.
type Driver struct {
	UserID     int64
	IsVerified bool
}

// OwnerDispatcher is the verification fact of an owner or dispatcher account.
type OwnerDispatcher struct {
	UserID     int64
	Role       Role
	IsVerified bool
}

// Vehicle belongs to exactly one driver.
type Vehicle struct {
	ID          int64
	DriverID    int64
	PlateNumber string
	Capacity    int
}

// Validate checks the vehicle attributes.
func (v *Vehicle) Validate() error {
	switch {
	case v.ID <= 0:
		return apperr.Invalid("vehicle id is required")
	case v.DriverID <= 0:
		return apperr.Invalid("vehicle driver is required")
	case strings.TrimSpace(v.PlateNumber) == "":
		return apperr.Invalid("plate number is required")
	case v.Capacity <= 0:
		return apperr.Invalid("capacity must be positive")
	}
	return nil
}
