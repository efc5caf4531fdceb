package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryCompletedEvent is emitted once per cargo after both sides confirmed delivery.
type DeliveryCompletedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	CargoID      int64     `json:"cargo_id"`
	DispatcherID *int64    `json:"dispatcher_id,omitempty"`
	DriverID     *int64    `json:"driver_id,omitempty"`
	ReceiverID   *int64    `json:"receiver_id,omitempty"`
	DeliveredAt  time.Time `json:"delivered_at"`
	ReceivedAt   time.Time `json:"received_at"`
}

// NewDeliveryCompletedEvent builds the event from a completed confirmation.
func NewDeliveryCompletedEvent(c *DeliveryConfirmation, dispatcherID *int64) DeliveryCompletedEvent {
	ev := DeliveryCompletedEvent{
		EventID:      uuid.New(),
		CargoID:      c.CargoID,
		DispatcherID: dispatcherID,
		DriverID:     c.DriverID,
		ReceiverID:   c.ReceiverID,
	}
	if c.DeliveredAt != nil {
		ev.DeliveredAt = *c.DeliveredAt
	}
	if c.ReceivedAt != nil {
		ev.ReceivedAt = *c.ReceivedAt
	}
	return ev
}
