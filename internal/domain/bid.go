package domain

import (
	"strings"
	"time"

	"cargo-platform-go/internal/apperr"
)

// BidStatus is the decision state of a bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// Valid reports whether s is a known bid status.
func (s BidStatus) Valid() bool {
	switch s {
	case BidStatusPending, BidStatusAccepted, BidStatusRejected:
		return true
	default:
		return false
	}
}

// DefaultBidView lists the statuses returned when the owner does not ask for every bid.
var DefaultBidView = []BidStatus{BidStatusPending, BidStatusRejected}

// Bid is a driver's proposal against a cargo. ProposedPrice is kept in minor units.
type Bid struct {
	ID            int64
	CargoID       int64
	DriverID      int64
	Proposal      string
	ProposedPrice int64
	Status        BidStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks a new bid and fills the default status.
func (b *Bid) Validate() error {
	if b.CargoID <= 0 {
		return apperr.Invalid("cargo is required")
	}
	if b.DriverID <= 0 {
		return apperr.Invalid("driver is required")
	}
	b.Proposal = strings.TrimSpace(b.Proposal)
	if b.Proposal == "" {
		return apperr.Invalid("proposal is required")
	}
	if b.ProposedPrice <= 0 {
		return apperr.Invalid("proposed price must be positive")
	}
	b.Status = BidStatusPending
	return nil
}

// ChangeStatus moves a bid to accepted or rejected.
// It reports whether the stored status actually changed.
func (b *Bid) ChangeStatus(next BidStatus) (bool, error) {
	if !next.Valid() {
		return false, apperr.Invalidf("unknown bid status %q", next)
	}
	if next == BidStatusPending {
		return false, apperr.Invalid("bid cannot be moved back to pending")
	}
	if b.Status == BidStatusAccepted {
		if next == BidStatusAccepted {
			return false, nil
		}
		return false, apperr.Conflict("accepted bid is immutable")
	}
	if b.Status == next {
		return false, nil
	}
	b.Status = next
	return true, nil
}
