package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/logx"
)

func TestHandlers_Ping(t *testing.T) {
	t.Parallel()

	h := New(logx.Nop(), nil)
	rr := httptest.NewRecorder()
	h.Ping(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Equal(t, "pong", body["message"])
}

func TestHandlers_HealthcheckAndNotFound(t *testing.T) {
	t.Parallel()

	h := New(nil, nil)

	rr := httptest.NewRecorder()
	h.HealthcheckHead(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"route not found","code":"not_found"}`, rr.Body.String())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandlers_HealthcheckChecksDatabase(t *testing.T) {
	t.Parallel()

	up := New(logx.Nop(), pingerFunc(func(context.Context) error { return nil }))
	rr := httptest.NewRecorder()
	up.HealthcheckHead(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	down := New(logx.Nop(), pingerFunc(func(context.Context) error { return errors.New("conn refused") }))
	rr = httptest.NewRecorder()
	down.HealthcheckHead(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestWriteDomainError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.Invalid("weight must be positive"), http.StatusBadRequest, `{"error":"weight must be positive","code":"validation_error"}`},
		{fmt.Errorf("tx: %w", apperr.Conflict("bid already accepted")), http.StatusConflict, `{"error":"bid already accepted","code":"conflict"}`},
		{apperr.Forbidden("not the owner"), http.StatusForbidden, `{"error":"not the owner","code":"forbidden"}`},
		{apperr.ErrNotFound, http.StatusNotFound, `{"error":"not found","code":"not_found"}`},
		{errors.New("pg: connection reset"), http.StatusInternalServerError, `{"error":"internal error","code":"internal_error"}`},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		writeDomainError(logx.Nop(), rr, httptest.NewRequest(http.MethodGet, "/", nil), c.err)
		require.Equal(t, c.status, rr.Code, c.err.Error())
		require.JSONEq(t, c.body, rr.Body.String())
	}
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	t.Parallel()

	err := validateStruct(&submitBidRequest{Proposal: "x", ProposedPrice: 0})
	require.EqualError(t, err, "proposed_price must be greater than 0")

	err = validateStruct(&bidStatusRequest{Status: "pending"})
	require.EqualError(t, err, "status must be one of [accepted rejected]")

	err = validateStruct(&recordTrackingRequest{DriverID: 1, VehicleID: 1})
	require.EqualError(t, err, "current_location is required")

	require.NoError(t, validateStruct(&createDispatchOrderRequest{CargoID: 3}))
}
