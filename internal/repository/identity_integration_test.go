//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/repository"
)

type IdentitySuite struct {
	suite.Suite
	identity *repository.IdentityRepo
	regions  *repository.RegionRepo
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.identity = repository.NewIdentityRepo(tcPool)
	s.regions = repository.NewRegionRepo(tcPool)
}

func (s *IdentitySuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(truncateAll(ctx, tcPool))
	s.Require().NoError(seedReference(ctx, tcPool))
}

func (s *IdentitySuite) TestDriverLifecycle() {
	ctx := context.Background()

	ok, err := s.identity.IsDriverVerified(ctx, 7)
	s.Require().NoError(err)
	s.False(ok, "unknown driver is not verified")

	s.Require().NoError(s.identity.UpsertDriver(ctx, domain.Driver{UserID: 7}))
	ok, err = s.identity.IsDriverVerified(ctx, 7)
	s.Require().NoError(err)
	s.False(ok)

	found, err := s.identity.SetDriverVerified(ctx, 7, true)
	s.Require().NoError(err)
	s.True(found)
	ok, err = s.identity.IsDriverVerified(ctx, 7)
	s.Require().NoError(err)
	s.True(ok)

	found, err = s.identity.SetDriverVerified(ctx, 8, true)
	s.Require().NoError(err)
	s.False(found)
}

func (s *IdentitySuite) TestUpsertVehicle() {
	ctx := context.Background()
	store := repository.NewStore(tcPool)

	found, err := s.identity.UpsertVehicle(ctx, domain.Vehicle{ID: 500, DriverID: 7, PlateNumber: "A001AA", Capacity: 20})
	s.Require().NoError(err)
	s.False(found, "unknown driver")

	s.Require().NoError(s.identity.UpsertDriver(ctx, domain.Driver{UserID: 7, IsVerified: true}))
	found, err = s.identity.UpsertVehicle(ctx, domain.Vehicle{ID: 500, DriverID: 7, PlateNumber: "A001AA", Capacity: 20})
	s.Require().NoError(err)
	s.True(found)

	found, err = s.identity.UpsertVehicle(ctx, domain.Vehicle{ID: 500, DriverID: 7, PlateNumber: "A001AA", Capacity: 25})
	s.Require().NoError(err)
	s.True(found)

	v, err := store.GetVehicle(ctx, 500)
	s.Require().NoError(err)
	s.Require().NotNil(v)
	s.Equal(25, v.Capacity)

	_, err = s.identity.UpsertVehicle(ctx, domain.Vehicle{ID: 501, DriverID: 7, PlateNumber: "A001AA", Capacity: 5})
	s.Require().ErrorIs(err, apperr.ErrConflict)
}

func (s *IdentitySuite) TestOwnerDispatcherRole() {
	ctx := context.Background()

	s.Require().NoError(s.identity.UpsertOwnerDispatcher(ctx,
		domain.OwnerDispatcher{UserID: 3, Role: domain.RoleDispatcher, IsVerified: true}))

	ok, err := s.identity.IsOwnerDispatcherVerified(ctx, 3, domain.RoleDispatcher)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.identity.IsOwnerDispatcherVerified(ctx, 3, domain.RoleOwner)
	s.Require().NoError(err)
	s.False(ok, "role must match")

	found, err := s.identity.SetOwnerDispatcherVerified(ctx, 3, false)
	s.Require().NoError(err)
	s.True(found)
	ok, err = s.identity.IsOwnerDispatcherVerified(ctx, 3, domain.RoleDispatcher)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *IdentitySuite) TestRegionOf() {
	ctx := context.Background()

	region, err := s.regions.RegionOf(ctx, 20)
	s.Require().NoError(err)
	s.Equal(int64(2), region)

	_, err = s.regions.RegionOf(ctx, 404)
	s.ErrorIs(err, apperr.ErrNotFound)
}
