package handlers

import "time"

type cargoDTO struct {
	ID                  int64      `json:"id"`
	OwnerID             int64      `json:"owner_id"`
	PickupRegionID      int64      `json:"pickup_region_id"`
	PickupLocationID    int64      `json:"pickup_location_id"`
	DeliveryRegionID    *int64     `json:"delivery_region_id"`
	DeliveryLocationID  *int64     `json:"delivery_location_id"`
	CargoType           string     `json:"cargo_type"`
	Weight              float64    `json:"weight"`
	WeightUnit          string     `json:"weight_unit"`
	Volume              *float64   `json:"volume"`
	VolumeUnit          string     `json:"volume_unit"`
	SpecialRequirements string     `json:"special_requirements"`
	TransportType       string     `json:"transport_type"`
	PlacementMethod     string     `json:"placement_method"`
	LoadingTime         *time.Time `json:"loading_time"`
	Readiness           string     `json:"readiness"`
	Status              string     `json:"status"`
	AcceptedBidID       *int64     `json:"accepted_bid_id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type createCargoRequest struct {
	PickupRegionID      int64      `json:"pickup_region_id" validate:"gt=0"`
	PickupLocationID    int64      `json:"pickup_location_id" validate:"gt=0"`
	DeliveryRegionID    *int64     `json:"delivery_region_id,omitempty" validate:"omitempty,gt=0"`
	DeliveryLocationID  *int64     `json:"delivery_location_id,omitempty" validate:"omitempty,gt=0"`
	CargoType           string     `json:"cargo_type" validate:"required,oneof=general fragile perishable hazardous"`
	Weight              float64    `json:"weight" validate:"gt=0"`
	WeightUnit          string     `json:"weight_unit" validate:"required,oneof=Lb Kg G T"`
	Volume              *float64   `json:"volume,omitempty" validate:"omitempty,gt=0"`
	VolumeUnit          string     `json:"volume_unit,omitempty"`
	SpecialRequirements string     `json:"special_requirements,omitempty" validate:"max=2000"`
	TransportType       string     `json:"transport_type" validate:"required,max=100"`
	PlacementMethod     string     `json:"placement_method,omitempty" validate:"max=100"`
	LoadingTime         *time.Time `json:"loading_time,omitempty"`
	Readiness           string     `json:"readiness,omitempty" validate:"omitempty,oneof=ready not_ready"`
}

type updateCargoRequest struct {
	PickupRegionID      *int64     `json:"pickup_region_id,omitempty" validate:"omitempty,gt=0"`
	PickupLocationID    *int64     `json:"pickup_location_id,omitempty" validate:"omitempty,gt=0"`
	DeliveryRegionID    *int64     `json:"delivery_region_id,omitempty" validate:"omitempty,gt=0"`
	DeliveryLocationID  *int64     `json:"delivery_location_id,omitempty" validate:"omitempty,gt=0"`
	CargoType           *string    `json:"cargo_type,omitempty" validate:"omitempty,oneof=general fragile perishable hazardous"`
	Weight              *float64   `json:"weight,omitempty" validate:"omitempty,gt=0"`
	WeightUnit          *string    `json:"weight_unit,omitempty" validate:"omitempty,oneof=Lb Kg G T"`
	Volume              *float64   `json:"volume,omitempty" validate:"omitempty,gt=0"`
	VolumeUnit          *string    `json:"volume_unit,omitempty"`
	SpecialRequirements *string    `json:"special_requirements,omitempty" validate:"omitempty,max=2000"`
	TransportType       *string    `json:"transport_type,omitempty" validate:"omitempty,max=100"`
	PlacementMethod     *string    `json:"placement_method,omitempty" validate:"omitempty,max=100"`
	LoadingTime         *time.Time `json:"loading_time,omitempty"`
	Readiness           *string    `json:"readiness,omitempty" validate:"omitempty,oneof=ready not_ready"`
}

type bidDTO struct {
	ID            int64     `json:"id"`
	CargoID       int64     `json:"cargo_id"`
	DriverID      int64     `json:"driver_id"`
	Proposal      string    `json:"proposal"`
	ProposedPrice int64     `json:"proposed_price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type submitBidRequest struct {
	Proposal      string `json:"proposal" validate:"required,max=2000"`
	ProposedPrice int64  `json:"proposed_price" validate:"gt=0"`
}

type bidStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type dispatchOrderDTO struct {
	ID               int64     `json:"id"`
	CargoID          int64     `json:"cargo_id"`
	DispatcherID     int64     `json:"dispatcher_id"`
	AssignedDriverID *int64    `json:"assigned_driver_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type createDispatchOrderRequest struct {
	CargoID  int64  `json:"cargo_id" validate:"gt=0"`
	DriverID *int64 `json:"driver_id,omitempty" validate:"omitempty,gt=0"`
}

type assignDriverRequest struct {
	DriverID int64 `json:"driver_id" validate:"gt=0"`
}

type trackingDTO struct {
	ID              int64     `json:"id"`
	CargoID         int64     `json:"cargo_id"`
	DriverID        int64     `json:"driver_id"`
	VehicleID       int64     `json:"vehicle_id"`
	CurrentLocation string    `json:"current_location"`
	Status          string    `json:"status"`
	LastUpdated     time.Time `json:"last_updated"`
}

type recordTrackingRequest struct {
	DriverID        int64  `json:"driver_id" validate:"gt=0"`
	VehicleID       int64  `json:"vehicle_id" validate:"gt=0"`
	CurrentLocation string `json:"current_location" validate:"required,max=255"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=pending in_transit delivered"`
}

type confirmationDTO struct {
	CargoID              int64      `json:"cargo_id"`
	State                string     `json:"state"`
	DriverID             *int64     `json:"driver_id"`
	IsDeliveredByDriver  bool       `json:"is_delivered_by_driver"`
	DeliveredAt          *time.Time `json:"delivered_at"`
	ReceiverID           *int64     `json:"receiver_id"`
	IsReceivedByReceiver bool       `json:"is_received_by_receiver"`
	ReceivedAt           *time.Time `json:"received_at"`
	DispatcherNotified   bool       `json:"dispatcher_notified"`
}
