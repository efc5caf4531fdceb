package domain

import "time"

// DispatchOrder binds a dispatcher, and later a driver, to exactly one cargo.
type DispatchOrder struct {
	ID               int64
	CargoID          int64
	DispatcherID     int64
	AssignedDriverID *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasDriver reports whether a driver is assigned.
func (o *DispatchOrder) HasDriver() bool {
	return o.AssignedDriverID != nil
}
