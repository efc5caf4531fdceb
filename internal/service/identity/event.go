package identity

import "time"

// Event types published by the identity provider.
const (
	DriverRegistered          = "driver.registered"
	DriverVerified            = "driver.verified"
	DriverRevoked             = "driver.revoked"
	DriverVehicleRegistered   = "driver.vehicle_registered"
	OwnerDispatcherRegistered = "owner_dispatcher.registered"
	OwnerDispatcherVerified   = "owner_dispatcher.verified"
	OwnerDispatcherRevoked    = "owner_dispatcher.revoked"
)

// Event is a single identity lifecycle event.
type Event struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Role       string    `json:"role,omitempty"`
	Verified   bool      `json:"verified,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`

	// Set on driver.vehicle_registered only.
	VehicleID   int64  `json:"vehicle_id,omitempty"`
	PlateNumber string `json:"plate_number,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}
