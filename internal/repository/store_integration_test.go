//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/ports/cargotx"
	"cargo-platform-go/internal/repository"
)

type StoreSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	store *repository.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.store = repository.NewStore(tcPool)
}

func (s *StoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(truncateAll(ctx, s.pool))
	s.Require().NoError(seedReference(ctx, s.pool))
	_, err := s.pool.Exec(ctx, `INSERT INTO drivers (user_id, is_verified) VALUES (7, TRUE)`)
	s.Require().NoError(err)
	_, err = s.pool.Exec(ctx,
		`INSERT INTO vehicles (id, driver_id, plate_number, capacity) VALUES (1, 7, 'A001AA', 20)`)
	s.Require().NoError(err)
}

func (s *StoreSuite) newCargo(ownerID int64) *domain.Cargo {
	deliveryRegion, deliveryUnit := int64(2), int64(20)
	c := &domain.Cargo{
		OwnerID:            ownerID,
		PickupRegionID:     1,
		PickupLocationID:   10,
		DeliveryRegionID:   &deliveryRegion,
		DeliveryLocationID: &deliveryUnit,
		CargoType:          domain.CargoTypeGeneral,
		Weight:             12.5,
		WeightUnit:         domain.WeightUnitT,
		TransportType:      "truck",
	}
	s.Require().NoError(c.Validate())
	s.Require().NoError(s.store.InsertCargo(context.Background(), c))
	return c
}

func (s *StoreSuite) TestCargo_InsertGetUpdate() {
	ctx := context.Background()

	c := s.newCargo(1)
	s.NotZero(c.ID)
	s.False(c.CreatedAt.IsZero())

	got, err := s.store.GetCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(c.OwnerID, got.OwnerID)
	s.Equal(domain.CargoStatusPending, got.Status)
	s.Equal(domain.VolumeUnitCubicMeter, got.VolumeUnit)
	s.InDelta(12.5, got.Weight, 0.001)
	s.Require().NotNil(got.DeliveryRegionID)
	s.Equal(int64(2), *got.DeliveryRegionID)

	got.Status = domain.CargoStatusInProgress
	got.SpecialRequirements = "keep dry"
	s.Require().NoError(s.store.UpdateCargo(ctx, got))

	again, err := s.store.GetCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.CargoStatusInProgress, again.Status)
	s.Equal("keep dry", again.SpecialRequirements)
}

func (s *StoreSuite) TestCargo_GetMissing() {
	got, err := s.store.GetCargo(context.Background(), 9999)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestCargo_UnknownLocation() {
	c := &domain.Cargo{
		OwnerID:          1,
		PickupRegionID:   1,
		PickupLocationID: 999,
		CargoType:        domain.CargoTypeGeneral,
		Weight:           1,
		WeightUnit:       domain.WeightUnitKg,
		TransportType:    "van",
	}
	s.Require().NoError(c.Validate())

	err := s.store.InsertCargo(context.Background(), c)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *StoreSuite) TestCargo_CheckConstraint() {
	ctx := context.Background()
	c := s.newCargo(1)

	c.Readiness = domain.ReadinessNotReady
	c.Status = domain.CargoStatusInProgress
	err := s.store.UpdateCargo(ctx, c)
	s.ErrorIs(err, apperr.ErrInvalid)
}

func (s *StoreSuite) TestCargo_ListFilter() {
	ctx := context.Background()
	s.newCargo(1)
	s.newCargo(1)
	s.newCargo(2)

	owner := int64(1)
	list, err := s.store.ListCargos(ctx, domain.CargoFilter{OwnerID: &owner})
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Less(list[0].ID, list[1].ID)

	limit, offset := 1, 1
	page, err := s.store.ListCargos(ctx, domain.CargoFilter{Limit: &limit, Offset: &offset})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(list[1].ID, page[0].ID)

	status := domain.CargoStatusCompleted
	none, err := s.store.ListCargos(ctx, domain.CargoFilter{Status: &status})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestCargo_DeleteCascades() {
	ctx := context.Background()
	c := s.newCargo(1)

	b := &domain.Bid{CargoID: c.ID, DriverID: 7, Proposal: "fast", ProposedPrice: 100}
	s.Require().NoError(b.Validate())
	s.Require().NoError(s.store.InsertBid(ctx, b))
	s.Require().NoError(s.store.InsertDispatchOrder(ctx, &domain.DispatchOrder{CargoID: c.ID, DispatcherID: 3}))
	s.Require().NoError(s.store.EnsureConfirmation(ctx, c.ID))

	deleted, err := s.store.DeleteCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.True(deleted)

	bid, err := s.store.GetBid(ctx, b.ID)
	s.Require().NoError(err)
	s.Nil(bid)
	order, err := s.store.GetDispatchOrderByCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Nil(order)
	conf, err := s.store.GetConfirmation(ctx, c.ID)
	s.Require().NoError(err)
	s.Nil(conf)

	deleted, err = s.store.DeleteCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *StoreSuite) TestClaimWinningBid_OnlyOnce() {
	ctx := context.Background()
	c := s.newCargo(1)

	ok, err := s.store.ClaimWinningBid(ctx, c.ID, 11)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.ClaimWinningBid(ctx, c.ID, 12)
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.store.GetCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.AcceptedBidID)
	s.Equal(int64(11), *got.AcceptedBidID)
}

func (s *StoreSuite) TestClaimWinningBid_Concurrent() {
	ctx := context.Background()
	c := s.newCargo(1)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(bidID int64) {
			defer wg.Done()
			ok, err := s.store.ClaimWinningBid(ctx, c.ID, bidID)
			if err == nil && ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(int64(i + 1))
	}
	wg.Wait()

	s.Equal(1, wins)
}

func (s *StoreSuite) TestBids_ListAndUniqueAccepted() {
	ctx := context.Background()
	c := s.newCargo(1)

	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		b := &domain.Bid{CargoID: c.ID, DriverID: 7, Proposal: "offer", ProposedPrice: int64(100 + i)}
		s.Require().NoError(b.Validate())
		s.Require().NoError(s.store.InsertBid(ctx, b))
		ids = append(ids, b.ID)
	}

	s.Require().NoError(s.store.UpdateBidStatus(ctx, ids[0], domain.BidStatusAccepted))
	s.Require().NoError(s.store.UpdateBidStatus(ctx, ids[1], domain.BidStatusRejected))

	err := s.store.UpdateBidStatus(ctx, ids[2], domain.BidStatusAccepted)
	s.ErrorIs(err, apperr.ErrConflict)

	view, err := s.store.ListBids(ctx, c.ID, domain.DefaultBidView)
	s.Require().NoError(err)
	s.Len(view, 2)
	for _, b := range view {
		s.NotEqual(domain.BidStatusAccepted, b.Status)
	}

	all, err := s.store.ListBids(ctx, c.ID, nil)
	s.Require().NoError(err)
	s.Len(all, 3)

	err = s.store.UpdateBidStatus(ctx, 9999, domain.BidStatusRejected)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *StoreSuite) TestDispatchOrder_OnePerCargo() {
	ctx := context.Background()
	c := s.newCargo(1)

	o := &domain.DispatchOrder{CargoID: c.ID, DispatcherID: 3}
	s.Require().NoError(s.store.InsertDispatchOrder(ctx, o))
	s.NotZero(o.ID)

	err := s.store.InsertDispatchOrder(ctx, &domain.DispatchOrder{CargoID: c.ID, DispatcherID: 4})
	s.ErrorIs(err, apperr.ErrConflict)

	err = s.store.InsertDispatchOrder(ctx, &domain.DispatchOrder{CargoID: 9999, DispatcherID: 4})
	s.ErrorIs(err, apperr.ErrNotFound)

	driver := int64(7)
	o.AssignedDriverID = &driver
	s.Require().NoError(s.store.UpdateDispatchOrder(ctx, o))

	got, err := s.store.GetDispatchOrder(ctx, o.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.AssignedDriverID)
	s.Equal(driver, *got.AssignedDriverID)
}

func (s *StoreSuite) TestTracking_Upsert() {
	ctx := context.Background()
	c := s.newCargo(1)

	t := &domain.Tracking{CargoID: c.ID, DriverID: 7, VehicleID: 1, CurrentLocation: "depot"}
	s.Require().NoError(t.Validate())
	s.Require().NoError(s.store.UpsertTracking(ctx, t))
	firstID := t.ID

	t.Status = domain.TrackingStatusInTransit
	t.CurrentLocation = "highway"
	s.Require().NoError(s.store.UpsertTracking(ctx, t))
	s.Equal(firstID, t.ID)

	got, err := s.store.GetTrackingByCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.TrackingStatusInTransit, got.Status)
	s.Equal("highway", got.CurrentLocation)

	v, err := s.store.GetVehicle(ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(7), v.DriverID)

	missing, err := s.store.GetVehicle(ctx, 42)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *StoreSuite) TestConfirmation_EnsureAndUpdate() {
	ctx := context.Background()
	c := s.newCargo(1)

	s.Require().NoError(s.store.EnsureConfirmation(ctx, c.ID))
	s.Require().NoError(s.store.EnsureConfirmation(ctx, c.ID))

	d, err := s.store.GetConfirmation(ctx, c.ID)
	s.Require().NoError(err)
	s.Require().NotNil(d)
	s.Equal(domain.ConfirmationAwaitingBoth, d.State())

	d.ConfirmDriver(7)
	s.Require().NoError(s.store.UpdateConfirmation(ctx, d))

	again, err := s.store.GetConfirmation(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.ConfirmationAwaitingReceiver, again.State())

	err = s.store.UpdateConfirmation(ctx, &domain.DeliveryConfirmation{CargoID: 9999})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *StoreSuite) TestWithTx_RollbackOnError() {
	ctx := context.Background()
	c := s.newCargo(1)
	boom := errors.New("boom")

	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		locked, err := tx.GetCargoForUpdate(ctx, c.ID)
		s.Require().NoError(err)
		s.Require().NoError(locked.SetStatus(domain.CargoStatusCancelled))
		s.Require().NoError(tx.UpdateCargo(ctx, locked))
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.store.GetCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.CargoStatusPending, got.Status)
}

func (s *StoreSuite) TestWithTx_Commit() {
	ctx := context.Background()
	c := s.newCargo(1)

	err := s.store.WithTx(ctx, func(tx cargotx.Repository) error {
		locked, err := tx.GetCargoForUpdate(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := locked.SetStatus(domain.CargoStatusCancelled); err != nil {
			return err
		}
		return tx.UpdateCargo(ctx, locked)
	})
	s.Require().NoError(err)

	got, err := s.store.GetCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.CargoStatusCancelled, got.Status)
}

func (s *StoreSuite) TestWithTx_PanicRollsBack() {
	ctx := context.Background()
	c := s.newCargo(1)

	s.Panics(func() {
		_ = s.store.WithTx(ctx, func(tx cargotx.Repository) error {
			locked, _ := tx.GetCargoForUpdate(ctx, c.ID)
			locked.Status = domain.CargoStatusCancelled
			_ = tx.UpdateCargo(ctx, locked)
			panic("boom")
		})
	})

	got, err := s.store.GetCargo(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(domain.CargoStatusPending, got.Status)
}
