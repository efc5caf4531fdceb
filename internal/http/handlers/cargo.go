package handlers

import (
	"net/http"
	"strconv"

	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
)

// CargoHandler serves the cargo registry endpoints.
type CargoHandler struct {
	uc     CargoUsecase
	logger logx.Logger
}

// NewCargoHandler creates a CargoHandler.
func NewCargoHandler(logger logx.Logger, uc CargoUsecase) *CargoHandler {
	return &CargoHandler{uc: uc, logger: logger}
}

// Create handles POST /cargos.
func (h *CargoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	var req createCargoRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	c, err := h.uc.Create(r.Context(), req.toModel(user))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/cargos/"+strconv.FormatInt(c.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, cargoToResponse(c))
}

// Get handles GET /cargos/{id}.
func (h *CargoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	c, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, cargoToResponse(c))
}

// List handles GET /cargos?status=&owner_id=&pickup_region_id=&delivery_region_id=&limit=&offset=.
func (h *CargoHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := actor(h.logger, w, r); !ok {
		return
	}

	var (
		f   domain.CargoFilter
		err error
	)
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.CargoStatus(s)
		f.Status = &st
	}
	if f.OwnerID, err = queryInt64(r, "owner_id"); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if f.PickupRegionID, err = queryInt64(r, "pickup_region_id"); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if f.DeliveryRegionID, err = queryInt64(r, "delivery_region_id"); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if f.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if f.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	list, err := h.uc.List(r.Context(), f)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, cargosToResponse(list))
}

// Update handles PATCH /cargos/{id}.
func (h *CargoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	var req updateCargoRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	c, err := h.uc.Update(r.Context(), id, user, req.toPatch())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, cargoToResponse(c))
}

// Cancel handles POST /cargos/{id}/cancel.
func (h *CargoHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	c, err := h.uc.Cancel(r.Context(), id, user)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, cargoToResponse(c))
}

// Delete handles DELETE /cargos/{id}.
func (h *CargoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	if err := h.uc.Delete(r.Context(), id, user); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
