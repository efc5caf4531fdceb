package memstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/testutil/memstore"
)

func newCargo(t *testing.T, s *memstore.Store) *domain.Cargo {
	t.Helper()
	c := &domain.Cargo{
		OwnerID:          1,
		PickupRegionID:   1,
		PickupLocationID: 10,
		CargoType:        domain.CargoTypeGeneral,
		Weight:           3,
		WeightUnit:       domain.WeightUnitKg,
		TransportType:    "van",
	}
	require.NoError(t, c.Validate())
	require.NoError(t, s.InsertCargo(context.Background(), c))
	return c
}

func TestWithTx_RestoresOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()
	c := newCargo(t, s)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx cargotx.Repository) error {
		locked, err := tx.GetCargoForUpdate(ctx, c.ID)
		require.NoError(t, err)
		locked.Status = domain.CargoStatusCancelled
		require.NoError(t, tx.UpdateCargo(ctx, locked))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetCargo(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CargoStatusPending, got.Status)
	require.Equal(t, 1, s.Transactions())
}

func TestFailOn(t *testing.T) {
	t.Parallel()

	s := memstore.New()
	boom := errors.New("disk full")
	s.FailOn("GetCargo", boom)

	_, err := s.GetCargo(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}

func TestRowConstraints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()
	c := newCargo(t, s)

	c.Status = domain.CargoStatusCompleted
	require.ErrorIs(t, s.UpdateCargo(ctx, c), apperr.ErrInvalid)

	o := &domain.DispatchOrder{CargoID: c.ID, DispatcherID: 2}
	require.NoError(t, s.InsertDispatchOrder(ctx, o))
	require.ErrorIs(t, s.InsertDispatchOrder(ctx, &domain.DispatchOrder{CargoID: c.ID, DispatcherID: 3}), apperr.ErrConflict)

	ok, err := s.ClaimWinningBid(ctx, c.ID, 5)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.ClaimWinningBid(ctx, c.ID, 6)
	require.NoError(t, err)
	require.False(t, ok)
}
