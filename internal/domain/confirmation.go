package domain

import "time"

// ConfirmationState is derived from the two sign-off flags.
type ConfirmationState string

const (
	ConfirmationAwaitingBoth     ConfirmationState = "awaiting_both"
	ConfirmationAwaitingReceiver ConfirmationState = "awaiting_receiver"
	ConfirmationAwaitingDriver   ConfirmationState = "awaiting_driver"
	ConfirmationCompleted        ConfirmationState = "completed"
)

// DeliveryConfirmation is the dual sign-off record of a cargo.
type DeliveryConfirmation struct {
	ID                   int64
	CargoID              int64
	DriverID             *int64
	IsDeliveredByDriver  bool
	DeliveredAt          *time.Time
	ReceiverID           *int64
	IsReceivedByReceiver bool
	ReceivedAt           *time.Time
	DispatcherNotified   bool
}

// State returns the position in the confirmation state machine.
func (d *DeliveryConfirmation) State() ConfirmationState {
	switch {
	case d.IsDeliveredByDriver && d.IsReceivedByReceiver:
		return ConfirmationCompleted
	case d.IsDeliveredByDriver:
		return ConfirmationAwaitingReceiver
	case d.IsReceivedByReceiver:
		return ConfirmationAwaitingDriver
	default:
		return ConfirmationAwaitingBoth
	}
}

// Stamped reports whether completion timestamps have already been written.
func (d *DeliveryConfirmation) Stamped() bool {
	return d.DeliveredAt != nil && d.ReceivedAt != nil
}

// ConfirmDriver records the driver side. Repeating it is a no-op.
func (d *DeliveryConfirmation) ConfirmDriver(driverID int64) {
	d.DriverID = &driverID
	d.IsDeliveredByDriver = true
}

// ConfirmReceiver records the receiver side. Repeating it is a no-op.
func (d *DeliveryConfirmation) ConfirmReceiver(receiverID int64) {
	d.ReceiverID = &receiverID
	d.IsReceivedByReceiver = true
}

// Complete stamps both timestamps once both sides confirmed.
// It returns true only on the call that performs the transition.
func (d *DeliveryConfirmation) Complete(now time.Time) bool {
	if d.State() != ConfirmationCompleted || d.Stamped() {
		return false
	}
	delivered, received := now, now
	d.DeliveredAt = &delivered
	d.ReceivedAt = &received
	return true
}

// MarkDispatcherNotified flips the one-shot flag. It returns false if it was already set.
func (d *DeliveryConfirmation) MarkDispatcherNotified() bool {
	if d.DispatcherNotified {
		return false
	}
	d.DispatcherNotified = true
	return true
}
