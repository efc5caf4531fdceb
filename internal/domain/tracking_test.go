package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

func TestTrackingStatus_CargoStatus(t *testing.T) {
	t.Parallel()

	s, ok := domain.TrackingStatusInTransit.CargoStatus()
	require.True(t, ok)
	require.Equal(t, domain.CargoStatusInProgress, s)

	s, ok = domain.TrackingStatusDelivered.CargoStatus()
	require.True(t, ok)
	require.Equal(t, domain.CargoStatusCompleted, s)

	_, ok = domain.TrackingStatusPending.CargoStatus()
	require.False(t, ok)
}

func TestTracking_Validate(t *testing.T) {
	t.Parallel()

	tr := &domain.Tracking{CargoID: 1, DriverID: 2, VehicleID: 3, CurrentLocation: " Tashkent "}
	require.NoError(t, tr.Validate())
	require.Equal(t, "Tashkent", tr.CurrentLocation)
	require.Equal(t, domain.TrackingStatusPending, tr.Status)

	tr.Status = "lost"
	require.ErrorIs(t, tr.Validate(), apperr.ErrInvalid)

	require.ErrorIs(t, (&domain.Tracking{CargoID: 1, DriverID: 2, VehicleID: 3}).Validate(), apperr.ErrInvalid)
}
