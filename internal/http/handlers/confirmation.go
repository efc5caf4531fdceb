package handlers

import (
	"net/http"

	"cargo-platform-go/internal/logx"
)

// ConfirmationHandler serves the delivery confirmation endpoints.
type ConfirmationHandler struct {
	uc     ConfirmationUsecase
	logger logx.Logger
}

// NewConfirmationHandler creates a ConfirmationHandler.
func NewConfirmationHandler(logger logx.Logger, uc ConfirmationUsecase) *ConfirmationHandler {
	return &ConfirmationHandler{uc: uc, logger: logger}
}

// ConfirmDriver handles POST /cargos/{id}/confirmation/driver.
func (h *ConfirmationHandler) ConfirmDriver(w http.ResponseWriter, r *http.Request) {
	cargoID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	d, err := h.uc.ConfirmByDriver(r.Context(), cargoID, user)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, confirmationToResponse(d))
}

// ConfirmReceiver handles POST /cargos/{id}/confirmation/receiver.
func (h *ConfirmationHandler) ConfirmReceiver(w http.ResponseWriter, r *http.Request) {
	cargoID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	d, err := h.uc.ConfirmByReceiver(r.Context(), cargoID, user)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, confirmationToResponse(d))
}

// Get handles GET /cargos/{id}/confirmation.
func (h *ConfirmationHandler) Get(w http.ResponseWriter, r *http.Request) {
	cargoID, _, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	d, err := h.uc.Get(r.Context(), cargoID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, confirmationToResponse(d))
}
