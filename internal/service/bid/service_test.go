package bid_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/ports/external/mocks"
	"cargo-platform-go/internal/service/bid"
	"cargo-platform-go/internal/testutil/memstore"
	"cargo-platform-go/internal/testutil/testlog"
)

const (
	ownerID      = int64(1)
	dispatcherID = int64(2)
	driverID     = int64(7)
	otherDriver  = int64(8)
	strangerID   = int64(99)
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

type fixture struct {
	svc      *bid.Service
	store    *memstore.Store
	accepted prometheus.Counter
	rec      *testlog.Recorder
	cargoID  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := newCtrl(t)

	gate := mocks.NewMockIdentityGate(ctrl)
	gate.EXPECT().IsDriverVerified(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (bool, error) {
			return id == driverID || id == otherDriver, nil
		}).AnyTimes()

	store := memstore.New()
	c := &domain.Cargo{
		OwnerID:          ownerID,
		PickupRegionID:   1,
		PickupLocationID: 10,
		CargoType:        domain.CargoTypeGeneral,
		Weight:           10,
		WeightUnit:       domain.WeightUnitKg,
		TransportType:    "truck",
	}
	require.NoError(t, c.Validate())
	require.NoError(t, store.InsertCargo(context.Background(), c))

	accepted := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_bids_accepted_total"})
	rec := testlog.New()
	return &fixture{
		svc:      bid.NewService(store, gate, accepted, time.Second, rec.Logger()),
		store:    store,
		accepted: accepted,
		rec:      rec,
		cargoID:  c.ID,
	}
}

func (f *fixture) submit(t *testing.T, driver, price int64) *domain.Bid {
	t.Helper()
	b, err := f.svc.Submit(context.Background(), &domain.Bid{
		CargoID:       f.cargoID,
		DriverID:      driver,
		Proposal:      "pickup tomorrow",
		ProposedPrice: price,
	})
	require.NoError(t, err)
	return b
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	b := f.submit(t, driverID, 100)

	require.NotZero(t, b.ID)
	require.Equal(t, domain.BidStatusPending, b.Status)
	require.True(t, f.rec.Has("bid submitted"))
}

func TestSubmit_Rejections(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, &domain.Bid{CargoID: f.cargoID, DriverID: strangerID, Proposal: "x", ProposedPrice: 1})
	require.ErrorIs(t, err, apperr.ErrForbidden, "unverified driver")

	_, err = f.svc.Submit(ctx, &domain.Bid{CargoID: f.cargoID, DriverID: driverID, Proposal: "x", ProposedPrice: 0})
	require.ErrorIs(t, err, apperr.ErrInvalid, "non-positive price")

	_, err = f.svc.Submit(ctx, &domain.Bid{CargoID: f.cargoID, DriverID: driverID, Proposal: "  ", ProposedPrice: 5})
	require.ErrorIs(t, err, apperr.ErrInvalid, "empty proposal")

	_, err = f.svc.Submit(ctx, &domain.Bid{CargoID: 404, DriverID: driverID, Proposal: "x", ProposedPrice: 5})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmit_CancelledCargoConflict(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	c, err := f.store.GetCargo(ctx, f.cargoID)
	require.NoError(t, err)
	c.Status = domain.CargoStatusCancelled
	require.NoError(t, f.store.UpdateCargo(ctx, c))

	_, err = f.svc.Submit(ctx, &domain.Bid{CargoID: f.cargoID, DriverID: driverID, Proposal: "x", ProposedPrice: 5})
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAcceptThenSubmit_Conflict(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)

	got, err := f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, domain.BidStatusAccepted, got.Status)
	require.Equal(t, float64(1), testutil.ToFloat64(f.accepted))
	require.True(t, f.rec.Has("bid accepted"))

	_, err = f.svc.Submit(ctx, &domain.Bid{CargoID: f.cargoID, DriverID: otherDriver, Proposal: "cheaper", ProposedPrice: 90})
	require.ErrorIs(t, err, apperr.ErrConflict)

	c, err := f.store.GetCargo(ctx, f.cargoID)
	require.NoError(t, err)
	require.NotNil(t, c.AcceptedBidID)
	require.Equal(t, b1.ID, *c.AcceptedBidID)
}

func TestSetStatus_AcceptedIsImmutable(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)
	_, err := f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusAccepted)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusRejected)
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusAccepted)
	require.NoError(t, err, "accepting again is a no-op")
	require.Equal(t, float64(1), testutil.ToFloat64(f.accepted))

	_, err = f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusPending)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestSetStatus_SecondAcceptConflicts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)
	b2 := f.submit(t, otherDriver, 90)

	_, err := f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusAccepted)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, b2.ID, ownerID, domain.BidStatusAccepted)
	require.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := f.store.GetBid(ctx, b2.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BidStatusPending, stored.Status)

	_, err = f.svc.SetStatus(ctx, b2.ID, ownerID, domain.BidStatusRejected)
	require.NoError(t, err, "other bids can still be rejected")
}

func TestSetStatus_ConcurrentAcceptsHaveOneWinner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	const n = 16
	bids := make([]*domain.Bid, 0, n)
	for i := 0; i < n; i++ {
		bids = append(bids, f.submit(t, driverID, int64(100+i)))
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for _, b := range bids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.svc.SetStatus(ctx, id, ownerID, domain.BidStatusAccepted)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			}
		}(b.ID)
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, n-1, conflicts)

	all, err := f.store.ListBids(ctx, f.cargoID, []domain.BidStatus{domain.BidStatusAccepted})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, float64(1), testutil.ToFloat64(f.accepted))
}

func TestSetStatus_Authorization(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)

	_, err := f.svc.SetStatus(ctx, b1.ID, strangerID, domain.BidStatusRejected)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.SetStatus(ctx, 404, ownerID, domain.BidStatusRejected)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.store.InsertDispatchOrder(ctx, &domain.DispatchOrder{CargoID: f.cargoID, DispatcherID: dispatcherID}))

	got, err := f.svc.SetStatus(ctx, b1.ID, dispatcherID, domain.BidStatusRejected)
	require.NoError(t, err, "the cargo's dispatcher acts as delegate")
	require.Equal(t, domain.BidStatusRejected, got.Status)
}

func TestListForCargo(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)
	b2 := f.submit(t, otherDriver, 90)
	f.submit(t, driverID, 80)

	_, err := f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusAccepted)
	require.NoError(t, err)
	_, err = f.svc.SetStatus(ctx, b2.ID, ownerID, domain.BidStatusRejected)
	require.NoError(t, err)

	view, err := f.svc.ListForCargo(ctx, f.cargoID, ownerID, false)
	require.NoError(t, err)
	require.Len(t, view, 2)
	for _, b := range view {
		require.NotEqual(t, domain.BidStatusAccepted, b.Status)
	}

	all, err := f.svc.ListForCargo(ctx, f.cargoID, ownerID, true)
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = f.svc.ListForCargo(ctx, f.cargoID, driverID, false)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.ListForCargo(ctx, 404, ownerID, false)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGet(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)

	got, err := f.svc.Get(ctx, b1.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, b1.ID, got.ID)

	_, err = f.svc.Get(ctx, b1.ID, strangerID)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.Get(ctx, 404, ownerID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSetStatus_StoreFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	b1 := f.submit(t, driverID, 100)

	sentinel := errors.New("write failed")
	f.store.FailOn("UpdateBidStatus", sentinel)

	_, err := f.svc.SetStatus(ctx, b1.ID, ownerID, domain.BidStatusAccepted)
	require.ErrorIs(t, err, sentinel)

	c, err := f.store.GetCargo(ctx, f.cargoID)
	require.NoError(t, err)
	require.Nil(t, c.AcceptedBidID, "winning slot claim is rolled back")
	require.Equal(t, float64(0), testutil.ToFloat64(f.accepted))
}
