package handlers

import (
	"net/http"

	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/service/tracking"
)

// TrackingHandler serves the tracking ledger endpoints.
type TrackingHandler struct {
	uc     TrackingUsecase
	logger logx.Logger
}

// NewTrackingHandler creates a TrackingHandler.
func NewTrackingHandler(logger logx.Logger, uc TrackingUsecase) *TrackingHandler {
	return &TrackingHandler{uc: uc, logger: logger}
}

// Record handles PUT /cargos/{id}/tracking.
func (h *TrackingHandler) Record(w http.ResponseWriter, r *http.Request) {
	cargoID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	var req recordTrackingRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	t, err := h.uc.Record(r.Context(), tracking.RecordInput{
		CargoID:   cargoID,
		Requester: user,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		Location:  req.CurrentLocation,
		Status:    domain.TrackingStatus(req.Status),
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trackingToResponse(t))
}

// Get handles GET /cargos/{id}/tracking.
func (h *TrackingHandler) Get(w http.ResponseWriter, r *http.Request) {
	cargoID, _, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	t, err := h.uc.Get(r.Context(), cargoID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trackingToResponse(t))
}
