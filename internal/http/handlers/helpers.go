package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cargo-platform-go/internal/apperr"
	mw "cargo-platform-go/internal/http/middleware"
	"cargo-platform-go/internal/logx"
)

// Error codes returned in the "code" field of error bodies.
const (
	codeValidation   = "validation_error"
	codeConflict     = "conflict"
	codeForbidden    = "forbidden"
	codeNotFound     = "not_found"
	codeUnauthorized = "unauthorized"
	codeInternal     = "internal_error"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && logger != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	if logger != nil {
		logger.Warn("http error",
			logx.String("req_id", reqID(r.Context())),
			logx.Int("status", status),
			logx.String("code", code),
			logx.String("msg", msg),
		)
	}
	writeJSON(logger, w, r, status, ErrorResponse{Error: msg, Code: code})
}

// writeDomainError maps service errors onto HTTP statuses.
func writeDomainError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, codeValidation, apperr.Message(err, "invalid input"))
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, codeConflict, apperr.Message(err, "conflict"))
	case errors.Is(err, apperr.ErrForbidden):
		writeError(logger, w, r, http.StatusForbidden, codeForbidden, apperr.Message(err, "forbidden"))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, codeNotFound, apperr.Message(err, "not found"))
	default:
		if logger != nil {
			logger.Error("internal error",
				logx.String("req_id", reqID(r.Context())),
				logx.String("path", r.URL.Path),
				logx.Err(err),
			)
		}
		writeError(logger, w, r, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

const bodyLimit = 1 << 20

// decodeJSON decodes a single JSON object and validates its struct tags.
func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, codeValidation, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, codeValidation, "invalid json: trailing data")
		return false
	}
	if err := validateStruct(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, codeValidation, err.Error())
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// actor returns the authenticated user or replies 401.
func actor(logger logx.Logger, w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := mw.ActorFrom(r.Context())
	if !ok {
		writeError(logger, w, r, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return 0, false
	}
	return id, true
}

// pathIDAndActor resolves the {id} URL param and the actor in one step.
func pathIDAndActor(logger logx.Logger, w http.ResponseWriter, r *http.Request) (id, user int64, ok bool) {
	user, ok = actor(logger, w, r)
	if !ok {
		return 0, 0, false
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(logger, w, r, http.StatusBadRequest, codeValidation, "invalid id")
		return 0, 0, false
	}
	return id, user, true
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return nil, errors.New("invalid " + key)
	}
	return &v, nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, errors.New("invalid " + key)
	}
	return &v, nil
}
