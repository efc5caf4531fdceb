package handlers

import (
	"context"
	"net/http"
	"time"

	"cargo-platform-go/internal/logx"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthcheckTimeout = time.Second

// Handlers serves the service-level endpoints that sit outside the cargo API.
type Handlers struct {
	Logger logx.Logger
	// DB is checked by HEAD /healthcheck when set.
	DB Pinger
}

// New creates Handlers. A nil db makes the healthcheck a liveness probe only.
func New(logger logx.Logger, db Pinger) *Handlers {
	return &Handlers{Logger: logx.OrNop(logger), DB: db}
}

// Ping handles GET /ping.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead answers 204 while the database responds and 503 otherwise.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			h.Logger.Warn("healthcheck failed", logx.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, codeNotFound, "route not found")
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}
