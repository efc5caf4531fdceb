package handlers

import (
	"net/http"
	"strconv"

	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
)

// BidHandler serves the bid marketplace endpoints.
type BidHandler struct {
	uc     BidUsecase
	logger logx.Logger
}

// NewBidHandler creates a BidHandler.
func NewBidHandler(logger logx.Logger, uc BidUsecase) *BidHandler {
	return &BidHandler{uc: uc, logger: logger}
}

// Submit handles POST /cargos/{id}/bids. The actor is the bidding driver.
func (h *BidHandler) Submit(w http.ResponseWriter, r *http.Request) {
	cargoID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	var req submitBidRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	b, err := h.uc.Submit(r.Context(), &domain.Bid{
		CargoID:       cargoID,
		DriverID:      user,
		Proposal:      req.Proposal,
		ProposedPrice: req.ProposedPrice,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/bids/"+strconv.FormatInt(b.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, bidToResponse(b))
}

// ListForCargo handles GET /cargos/{id}/bids. ?all=true includes accepted bids.
func (h *BidHandler) ListForCargo(w http.ResponseWriter, r *http.Request) {
	cargoID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	includeAll := false
	if s := r.URL.Query().Get("all"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, codeValidation, "invalid all")
			return
		}
		includeAll = v
	}

	list, err := h.uc.ListForCargo(r.Context(), cargoID, user, includeAll)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, bidsToResponse(list))
}

// Get handles GET /bids/{id}.
func (h *BidHandler) Get(w http.ResponseWriter, r *http.Request) {
	bidID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	b, err := h.uc.Get(r.Context(), bidID, user)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, bidToResponse(b))
}

// SetStatus handles PATCH /bids/{id}/status.
func (h *BidHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	bidID, user, ok := pathIDAndActor(h.logger, w, r)
	if !ok {
		return
	}
	var req bidStatusRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	b, err := h.uc.SetStatus(r.Context(), bidID, user, domain.BidStatus(req.Status))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, bidToResponse(b))
}
