package handlers

import "cargo-platform-go/internal/domain"

func (r createCargoRequest) toModel(ownerID int64) *domain.Cargo {
	return &domain.Cargo{
		OwnerID:             ownerID,
		PickupRegionID:      r.PickupRegionID,
		PickupLocationID:    r.PickupLocationID,
		DeliveryRegionID:    r.DeliveryRegionID,
		DeliveryLocationID:  r.DeliveryLocationID,
		CargoType:           domain.CargoType(r.CargoType),
		Weight:              r.Weight,
		WeightUnit:          domain.WeightUnit(r.WeightUnit),
		Volume:              r.Volume,
		VolumeUnit:          domain.VolumeUnit(r.VolumeUnit),
		SpecialRequirements: r.SpecialRequirements,
		TransportType:       r.TransportType,
		PlacementMethod:     r.PlacementMethod,
		LoadingTime:         r.LoadingTime,
		Readiness:           domain.Readiness(r.Readiness),
	}
}

func (r updateCargoRequest) toPatch() domain.CargoPatch {
	p := domain.CargoPatch{
		PickupRegionID:      r.PickupRegionID,
		PickupLocationID:    r.PickupLocationID,
		DeliveryRegionID:    r.DeliveryRegionID,
		DeliveryLocationID:  r.DeliveryLocationID,
		Weight:              r.Weight,
		Volume:              r.Volume,
		SpecialRequirements: r.SpecialRequirements,
		TransportType:       r.TransportType,
		PlacementMethod:     r.PlacementMethod,
		LoadingTime:         r.LoadingTime,
	}
	if r.CargoType != nil {
		v := domain.CargoType(*r.CargoType)
		p.CargoType = &v
	}
	if r.WeightUnit != nil {
		v := domain.WeightUnit(*r.WeightUnit)
		p.WeightUnit = &v
	}
	if r.VolumeUnit != nil {
		v := domain.VolumeUnit(*r.VolumeUnit)
		p.VolumeUnit = &v
	}
	if r.Readiness != nil {
		v := domain.Readiness(*r.Readiness)
		p.Readiness = &v
	}
	return p
}

func cargoToResponse(c *domain.Cargo) cargoDTO {
	return cargoDTO{
		ID:                  c.ID,
		OwnerID:             c.OwnerID,
		PickupRegionID:      c.PickupRegionID,
		PickupLocationID:    c.PickupLocationID,
		DeliveryRegionID:    c.DeliveryRegionID,
		DeliveryLocationID:  c.DeliveryLocationID,
		CargoType:           string(c.CargoType),
		Weight:              c.Weight,
		WeightUnit:          string(c.WeightUnit),
		Volume:              c.Volume,
		VolumeUnit:          string(c.VolumeUnit),
		SpecialRequirements: c.SpecialRequirements,
		TransportType:       c.TransportType,
		PlacementMethod:     c.PlacementMethod,
		LoadingTime:         c.LoadingTime,
		Readiness:           string(c.Readiness),
		Status:              string(c.Status),
		AcceptedBidID:       c.AcceptedBidID,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func cargosToResponse(list []domain.Cargo) []cargoDTO {
	out := make([]cargoDTO, 0, len(list))
	for i := range list {
		out = append(out, cargoToResponse(&list[i]))
	}
	return out
}

func bidToResponse(b *domain.Bid) bidDTO {
	return bidDTO{
		ID:            b.ID,
		CargoID:       b.CargoID,
		DriverID:      b.DriverID,
		Proposal:      b.Proposal,
		ProposedPrice: b.ProposedPrice,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func bidsToResponse(list []domain.Bid) []bidDTO {
	out := make([]bidDTO, 0, len(list))
	for i := range list {
		out = append(out, bidToResponse(&list[i]))
	}
	return out
}

func orderToResponse(o *domain.DispatchOrder) dispatchOrderDTO {
	return dispatchOrderDTO{
		ID:               o.ID,
		CargoID:          o.CargoID,
		DispatcherID:     o.DispatcherID,
		AssignedDriverID: o.AssignedDriverID,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func trackingToResponse(t *domain.Tracking) trackingDTO {
	return trackingDTO{
		ID:              t.ID,
		CargoID:         t.CargoID,
		DriverID:        t.DriverID,
		VehicleID:       t.VehicleID,
		CurrentLocation: t.CurrentLocation,
		Status:          string(t.Status),
		LastUpdated:     t.LastUpdated,
	}
}

func confirmationToResponse(d *domain.DeliveryConfirmation) confirmationDTO {
	return confirmationDTO{
		CargoID:              d.CargoID,
		State:                string(d.State()),
		DriverID:             d.DriverID,
		IsDeliveredByDriver:  d.IsDeliveredByDriver,
		DeliveredAt:          d.DeliveredAt,
		ReceiverID:           d.ReceiverID,
		IsReceivedByReceiver: d.IsReceivedByReceiver,
		ReceivedAt:           d.ReceivedAt,
		DispatcherNotified:   d.DispatcherNotified,
	}
}
