package kafka

import (
	"strings"
	"time"

	"cargo-platform-go/internal/service/identity"
)

// EventDTO is the wire form of an identity event.
type EventDTO struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Role       string    `json:"role,omitempty"`
	Verified   bool      `json:"verified,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`

	VehicleID   int64  `json:"vehicle_id,omitempty"`
	PlateNumber string `json:"plate_number,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

// ToDomain converts EventDTO to identity.Event.
func ToDomain(dto EventDTO) identity.Event {
	return identity.Event{
		Type:       strings.ToLower(strings.TrimSpace(dto.Type)),
		UserID:     dto.UserID,
		Role:       strings.ToLower(strings.TrimSpace(dto.Role)),
		Verified:   dto.Verified,
		OccurredAt: dto.OccurredAt,

		VehicleID:   dto.VehicleID,
		PlateNumber: strings.TrimSpace(dto.PlateNumber),
		Capacity:    dto.Capacity,
	}
}
