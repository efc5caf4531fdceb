package domain

import (
	"strings"
	"time"

	"cargo-platform-go/internal/apperr"
)

// CargoStatus is the workflow status of a cargo.
type CargoStatus string

const (
	CargoStatusPending    CargoStatus = "pending"
	CargoStatusInProgress CargoStatus = "in_progress"
	CargoStatusCompleted  CargoStatus = "completed"
	CargoStatusCancelled  CargoStatus = "cancelled"
)

// Valid reports whether s is a known cargo status.
func (s CargoStatus) Valid() bool {
	switch s {
	case CargoStatusPending, CargoStatusInProgress, CargoStatusCompleted, CargoStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further status change is allowed.
func (s CargoStatus) Terminal() bool {
	return s == CargoStatusCompleted || s == CargoStatusCancelled
}

// Readiness tells whether the cargo can be moved.
type Readiness string

const (
	ReadinessReady    Readiness = "ready"
	ReadinessNotReady Readiness = "not_ready"
)

// Valid reports whether r is a known readiness value.
func (r Readiness) Valid() bool {
	return r == ReadinessReady || r == ReadinessNotReady
}

// CargoType classifies the goods.
type CargoType string

const (
	CargoTypeGeneral    CargoType = "general"
	CargoTypeFragile    CargoType = "fragile"
	CargoTypePerishable CargoType = "perishable"
	CargoTypeHazardous  CargoType = "hazardous"
)

// Valid reports whether t is a known cargo type.
func (t CargoType) Valid() bool {
	switch t {
	case CargoTypeGeneral, CargoTypeFragile, CargoTypePerishable, CargoTypeHazardous:
		return true
	default:
		return false
	}
}

// WeightUnit is the unit of Cargo.Weight.
type WeightUnit string

const (
	WeightUnitLb WeightUnit = "Lb"
	WeightUnitKg WeightUnit = "Kg"
	WeightUnitG  WeightUnit = "G"
	WeightUnitT  WeightUnit = "T"
)

// Valid reports whether u is a known weight unit.
func (u WeightUnit) Valid() bool {
	switch u {
	case WeightUnitLb, WeightUnitKg, WeightUnitG, WeightUnitT:
		return true
	default:
		return false
	}
}

// VolumeUnit is the unit of Cargo.Volume.
type VolumeUnit string

const (
	VolumeUnitCubicMeter VolumeUnit = "m³"
	VolumeUnitLiter      VolumeUnit = "L"
)

// Valid reports whether u is a known volume unit.
func (u VolumeUnit) Valid() bool {
	return u == VolumeUnitCubicMeter || u == VolumeUnitLiter
}

// Cargo is a shipment posted by an owner.
type Cargo struct {
	ID                  int64
	OwnerID             int64
	PickupRegionID      int64
	PickupLocationID    int64
	DeliveryRegionID    *int64
	DeliveryLocationID  *int64
	CargoType           CargoType
	Weight              float64
	WeightUnit          WeightUnit
	Volume              *float64
	VolumeUnit          VolumeUnit
	SpecialRequirements string
	TransportType       string
	PlacementMethod     string
	LoadingTime         *time.Time
	Readiness           Readiness
	Status              CargoStatus
	AcceptedBidID       *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasDeliveryRegion reports whether the delivery destination is resolved.
func (c *Cargo) HasDeliveryRegion() bool {
	return c.DeliveryRegionID != nil && c.DeliveryLocationID != nil
}

// Validate checks the attribute set of a cargo and fills defaults.
func (c *Cargo) Validate() error {
	if c.OwnerID <= 0 {
		return apperr.Invalid("owner is required")
	}
	if c.PickupRegionID <= 0 || c.PickupLocationID <= 0 {
		return apperr.Invalid("pickup region and location are required")
	}
	if (c.DeliveryRegionID == nil) != (c.DeliveryLocationID == nil) {
		return apperr.Invalid("delivery region and location must be set together")
	}
	if !c.CargoType.Valid() {
		return apperr.Invalidf("unknown cargo type %q", c.CargoType)
	}
	if c.Weight <= 0 {
		return apperr.Invalid("weight must be positive")
	}
	if !c.WeightUnit.Valid() {
		return apperr.Invalidf("unknown weight unit %q", c.WeightUnit)
	}
	if c.Volume != nil && *c.Volume <= 0 {
		return apperr.Invalid("volume must be positive")
	}
	if c.VolumeUnit == "" {
		c.VolumeUnit = VolumeUnitCubicMeter
	}
	if !c.VolumeUnit.Valid() {
		return apperr.Invalidf("unknown volume unit %q", c.VolumeUnit)
	}
	c.TransportType = strings.TrimSpace(c.TransportType)
	if c.TransportType == "" {
		return apperr.Invalid("transport type is required")
	}
	if c.Readiness == "" {
		c.Readiness = ReadinessReady
	}
	if !c.Readiness.Valid() {
		return apperr.Invalidf("unknown readiness %q", c.Readiness)
	}
	if c.Status == "" {
		c.Status = CargoStatusPending
	}
	if !c.Status.Valid() {
		return apperr.Invalidf("unknown cargo status %q", c.Status)
	}
	c.enforceReadiness()
	return nil
}

// SetStatus applies a status transition. A not_ready cargo can only be pending,
// any other target is rejected instead of being silently overridden.
func (c *Cargo) SetStatus(next CargoStatus) error {
	if !next.Valid() {
		return apperr.Invalidf("unknown cargo status %q", next)
	}
	if c.Readiness == ReadinessNotReady && next != CargoStatusPending {
		return apperr.Invalid("cargo is not ready")
	}
	if next == CargoStatusCompleted && !c.HasDeliveryRegion() {
		return apperr.Invalid("cargo cannot be completed without a delivery region")
	}
	if c.Status.Terminal() && next != c.Status {
		return apperr.Conflict("cargo is already " + string(c.Status))
	}
	c.Status = next
	return nil
}

// RequireReady fails when the cargo is not ready to be moved.
func (c *Cargo) RequireReady() error {
	if c.Readiness == ReadinessNotReady {
		return apperr.Invalid("cargo is not ready")
	}
	return nil
}

// RequireOpen fails when the cargo reached a terminal status.
func (c *Cargo) RequireOpen() error {
	if c.Status.Terminal() {
		return apperr.Conflict("cargo is already " + string(c.Status))
	}
	return nil
}

func (c *Cargo) enforceReadiness() {
	if c.Readiness == ReadinessNotReady {
		c.Status = CargoStatusPending
	}
}

// CargoPatch carries owner-editable fields. Status is not part of it.
type CargoPatch struct {
	PickupRegionID      *int64
	PickupLocationID    *int64
	DeliveryRegionID    *int64
	DeliveryLocationID  *int64
	CargoType           *CargoType
	Weight              *float64
	WeightUnit          *WeightUnit
	Volume              *float64
	VolumeUnit          *VolumeUnit
	SpecialRequirements *string
	TransportType       *string
	PlacementMethod     *string
	LoadingTime         *time.Time
	Readiness           *Readiness
}

// Empty reports whether the patch changes nothing.
func (p CargoPatch) Empty() bool {
	return p == CargoPatch{}
}

// Apply copies the set fields of p onto c and re-validates it.
func (p CargoPatch) Apply(c *Cargo) error {
	if p.PickupRegionID != nil {
		c.PickupRegionID = *p.PickupRegionID
	}
	if p.PickupLocationID != nil {
		c.PickupLocationID = *p.PickupLocationID
	}
	if p.DeliveryRegionID != nil {
		c.DeliveryRegionID = p.DeliveryRegionID
	}
	if p.DeliveryLocationID != nil {
		c.DeliveryLocationID = p.DeliveryLocationID
	}
	if p.CargoType != nil {
		c.CargoType = *p.CargoType
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.WeightUnit != nil {
		c.WeightUnit = *p.WeightUnit
	}
	if p.Volume != nil {
		c.Volume = p.Volume
	}
	if p.VolumeUnit != nil {
		c.VolumeUnit = *p.VolumeUnit
	}
	if p.SpecialRequirements != nil {
		c.SpecialRequirements = *p.SpecialRequirements
	}
	if p.TransportType != nil {
		c.TransportType = *p.TransportType
	}
	if p.PlacementMethod != nil {
		c.PlacementMethod = *p.PlacementMethod
	}
	if p.LoadingTime != nil {
		c.LoadingTime = p.LoadingTime
	}
	if p.Readiness != nil {
		c.Readiness = *p.Readiness
	}
	return c.Validate()
}

// CargoFilter narrows List results.
type CargoFilter struct {
	OwnerID          *int64
	Status           *CargoStatus
	PickupRegionID   *int64
	DeliveryRegionID *int64
	Limit            *int
	Offset           *int
}
