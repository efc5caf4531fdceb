package domain

import (
	"strings"
	"time"

	"cargo-platform-go/internal/apperr"
)

// TrackingStatus is the shipment progress reported by the carrier side.
type TrackingStatus string

const (
	TrackingStatusPending   TrackingStatus = "pending"
	TrackingStatusInTransit TrackingStatus = "in_transit"
	TrackingStatusDelivered TrackingStatus = "delivered"
)

// Valid reports whether s is a known tracking status.
func (s TrackingStatus) Valid() bool {
	switch s {
	case TrackingStatusPending, TrackingStatusInTransit, TrackingStatusDelivered:
		return true
	default:
		return false
	}
}

// CargoStatus maps a tracking status onto the cargo. ok is false when the cargo is left untouched.
func (s TrackingStatus) CargoStatus() (status CargoStatus, ok bool) {
	switch s {
	case TrackingStatusInTransit:
		return CargoStatusInProgress, true
	case TrackingStatusDelivered:
		return CargoStatusCompleted, true
	default:
		return "", false
	}
}

// Tracking is the current location and status of a cargo in transit.
type Tracking struct {
	ID              int64
	CargoID         int64
	DriverID        int64
	VehicleID       int64
	CurrentLocation string
	Status          TrackingStatus
	LastUpdated     time.Time
}

// Validate checks a tracking write.
func (t *Tracking) Validate() error {
	if t.CargoID <= 0 {
		return apperr.Invalid("cargo is required")
	}
	if t.DriverID <= 0 {
		return apperr.Invalid("driver is required")
	}
	if t.VehicleID <= 0 {
		return apperr.Invalid("vehicle is required")
	}
	t.CurrentLocation = strings.TrimSpace(t.CurrentLocation)
	if t.CurrentLocation == "" {
		return apperr.Invalid("current location is required")
	}
	if t.Status == "" {
		t.Status = TrackingStatusPending
	}
	if !t.Status.Valid() {
		return apperr.Invalidf("unknown tracking status %q", t.Status)
	}
	return nil
}
