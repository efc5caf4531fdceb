package handlers

import (
	"net/http"
	"strconv"

	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/service/dispatch"
)

// DispatchHandler serves the dispatcher order endpoints.
type DispatchHandler struct {
	uc     DispatchUsecase
	logger logx.Logger
}

// NewDispatchHandler creates a DispatchHandler.
func NewDispatchHandler(logger logx.Logger, uc DispatchUsecase) *DispatchHandler {
	return &DispatchHandler{uc: uc, logger: logger}
}

// Create handles POST /dispatch-orders. The actor is the dispatcher.
func (h *DispatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	var req createDispatchOrderRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	o, err := h.uc.Create(r.Context(), dispatch.CreateInput{
		CargoID:      req.CargoID,
		DispatcherID: user,
		DriverID:     req.DriverID,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/dispatch-orders/"+strconv.FormatInt(o.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(o))
}

// Get handles GET /dispatch-orders/{id}.
func (h *DispatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	o, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
}

// Assign handles POST /dispatch-orders/{id}/assign.
func (h *DispatchHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	var req assignDriverRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	o, err := h.uc.AssignDriver(r.Context(), id, user, req.DriverID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
}

// Complete handles POST /dispatch-orders/{id}/complete and returns the completed cargo.
func (h *DispatchHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	c, err := h.uc.MarkCompleted(r.Context(), id, user)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, cargoToResponse(c))
}
