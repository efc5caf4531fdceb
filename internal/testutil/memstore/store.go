// Package memstore is an in-memory cargotx.Store for service tests.
//
// Transactions are serialized by a single lock, which is stricter than the
// per-row locks of Postgres but gives the same observable outcome for one cargo.
// A failed transaction restores the state it started from.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/ports/cargotx"
)

type state struct {
	seq           int64
	cargos        map[int64]domain.Cargo
	bids          map[int64]domain.Bid
	orders        map[int64]domain.DispatchOrder
	trackings     map[int64]domain.Tracking
	confirmations map[int64]domain.DeliveryConfirmation
	vehicles      map[int64]domain.Vehicle
}

func newState() state {
	return state{
		cargos:        map[int64]domain.Cargo{},
		bids:          map[int64]domain.Bid{},
		orders:        map[int64]domain.DispatchOrder{},
		trackings:     map[int64]domain.Tracking{},
		confirmations: map[int64]domain.DeliveryConfirmation{},
		vehicles:      map[int64]domain.Vehicle{},
	}
}

func (s state) clone() state {
	out := newState()
	out.seq = s.seq
	for k, v := range s.cargos {
		out.cargos[k] = v
	}
	for k, v := range s.bids {
		out.bids[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	for k, v := range s.trackings {
		out.trackings[k] = v
	}
	for k, v := range s.confirmations {
		out.confirmations[k] = v
	}
	for k, v := range s.vehicles {
		out.vehicles[k] = v
	}
	return out
}

// Store keeps the whole workflow in maps.
type Store struct {
	txMu sync.Mutex

	mu       sync.Mutex
	st       state
	failures map[string]error
	txCount  int
	now      func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{st: newState(), failures: map[string]error{}, now: time.Now}
}

// FailOn makes every later call of the named repository method return err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// AddVehicle seeds a vehicle.
func (s *Store) AddVehicle(v domain.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.vehicles[v.ID] = v
}

// Transactions returns how many transactions were started.
func (s *Store) Transactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCount
}

// WithTx runs fn with exclusive access and rolls every change back if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(tx cargotx.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	s.txCount++
	snapshot := s.st.clone()
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			restore()
			panic(p)
		}
	}()

	if err := fn(s); err != nil {
		restore()
		return err
	}
	return nil
}

// enter locks the state and reports an injected failure or a dead context.
// The caller must call s.mu.Unlock when err is nil.
func (s *Store) enter(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.failures[method]; err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

func checkCargoRow(c *domain.Cargo) error {
	if c.Readiness == domain.ReadinessNotReady && c.Status != domain.CargoStatusPending {
		return apperr.Invalid("cargo violates a status constraint")
	}
	if c.Status == domain.CargoStatusCompleted && c.DeliveryRegionID == nil {
		return apperr.Invalid("cargo violates a status constraint")
	}
	return nil
}

// InsertCargo implements cargotx.CargoRepository.
func (s *Store) InsertCargo(ctx context.Context, c *domain.Cargo) error {
	if err := s.enter(ctx, "InsertCargo"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := checkCargoRow(c); err != nil {
		return err
	}
	c.ID = s.nextID()
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.st.cargos[c.ID] = *c
	return nil
}

// GetCargo implements cargotx.CargoRepository.
func (s *Store) GetCargo(ctx context.Context, id int64) (*domain.Cargo, error) {
	if err := s.enter(ctx, "GetCargo"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	c, ok := s.st.cargos[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetCargoForUpdate implements cargotx.CargoRepository.
func (s *Store) GetCargoForUpdate(ctx context.Context, id int64) (*domain.Cargo, error) {
	if err := s.enter(ctx, "GetCargoForUpdate"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	c, ok := s.st.cargos[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// UpdateCargo implements cargotx.CargoRepository.
func (s *Store) UpdateCargo(ctx context.Context, c *domain.Cargo) error {
	if err := s.enter(ctx, "UpdateCargo"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.st.cargos[c.ID]; !ok {
		return apperr.NotFound("cargo not found")
	}
	if err := checkCargoRow(c); err != nil {
		return err
	}
	c.UpdatedAt = s.now()
	s.st.cargos[c.ID] = *c
	return nil
}

// DeleteCargo implements cargotx.CargoRepository and cascades like the schema does.
func (s *Store) DeleteCargo(ctx context.Context, id int64) (bool, error) {
	if err := s.enter(ctx, "DeleteCargo"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	if _, ok := s.st.cargos[id]; !ok {
		return false, nil
	}
	delete(s.st.cargos, id)
	for bidID, b := range s.st.bids {
		if b.CargoID == id {
			delete(s.st.bids, bidID)
		}
	}
	for orderID, o := range s.st.orders {
		if o.CargoID == id {
			delete(s.st.orders, orderID)
		}
	}
	delete(s.st.trackings, id)
	delete(s.st.confirmations, id)
	return true, nil
}

// ListCargos implements cargotx.CargoRepository.
func (s *Store) ListCargos(ctx context.Context, f domain.CargoFilter) ([]domain.Cargo, error) {
	if err := s.enter(ctx, "ListCargos"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]domain.Cargo, 0, len(s.st.cargos))
	for _, c := range s.st.cargos {
		if f.OwnerID != nil && c.OwnerID != *f.OwnerID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.PickupRegionID != nil && c.PickupRegionID != *f.PickupRegionID {
			continue
		}
		if f.DeliveryRegionID != nil && (c.DeliveryRegionID == nil || *c.DeliveryRegionID != *f.DeliveryRegionID) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if f.Offset != nil {
		if *f.Offset >= len(out) {
			return []domain.Cargo{}, nil
		}
		out = out[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit < len(out) {
		out = out[:*f.Limit]
	}
	return out, nil
}

// ClaimWinningBid implements cargotx.CargoRepository.
func (s *Store) ClaimWinningBid(ctx context.Context, cargoID, bidID int64) (bool, error) {
	if err := s.enter(ctx, "ClaimWinningBid"); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	c, ok := s.st.cargos[cargoID]
	if !ok || c.AcceptedBidID != nil {
		return false, nil
	}
	c.AcceptedBidID = &bidID
	c.UpdatedAt = s.now()
	s.st.cargos[cargoID] = c
	return true, nil
}

// InsertBid implements cargotx.BidRepository.
func (s *Store) InsertBid(ctx context.Context, b *domain.Bid) error {
	if err := s.enter(ctx, "InsertBid"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.st.cargos[b.CargoID]; !ok {
		return apperr.NotFound("cargo not found")
	}
	b.ID = s.nextID()
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	s.st.bids[b.ID] = *b
	return nil
}

// GetBid implements cargotx.BidRepository.
func (s *Store) GetBid(ctx context.Context, id int64) (*domain.Bid, error) {
	if err := s.enter(ctx, "GetBid"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	b, ok := s.st.bids[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// ListBids implements cargotx.BidRepository.
func (s *Store) ListBids(ctx context.Context, cargoID int64, statuses []domain.BidStatus) ([]domain.Bid, error) {
	if err := s.enter(ctx, "ListBids"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	want := make(map[domain.BidStatus]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	out := make([]domain.Bid, 0)
	for _, b := range s.st.bids {
		if b.CargoID != cargoID {
			continue
		}
		if len(want) > 0 && !want[b.Status] {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateBidStatus implements cargotx.BidRepository and keeps one accepted bid per cargo.
func (s *Store) UpdateBidStatus(ctx context.Context, id int64, status domain.BidStatus) error {
	if err := s.enter(ctx, "UpdateBidStatus"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	b, ok := s.st.bids[id]
	if !ok {
		return apperr.NotFound("bid not found")
	}
	if status == domain.BidStatusAccepted {
		for _, other := range s.st.bids {
			if other.ID != id && other.CargoID == b.CargoID && other.Status == domain.BidStatusAccepted {
				return apperr.Conflict("cargo already has an accepted bid")
			}
		}
	}
	b.Status = status
	b.UpdatedAt = s.now()
	s.st.bids[id] = b
	return nil
}

// InsertDispatchOrder implements cargotx.DispatchRepository.
func (s *Store) InsertDispatchOrder(ctx context.Context, o *domain.DispatchOrder) error {
	if err := s.enter(ctx, "InsertDispatchOrder"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.st.cargos[o.CargoID]; !ok {
		return apperr.NotFound("cargo not found")
	}
	for _, other := range s.st.orders {
		if other.CargoID == o.CargoID {
			return apperr.Conflict("cargo already has a dispatcher order")
		}
	}
	o.ID = s.nextID()
	o.CreatedAt = s.now()
	o.UpdatedAt = o.CreatedAt
	s.st.orders[o.ID] = *o
	return nil
}

// GetDispatchOrder implements cargotx.DispatchRepository.
func (s *Store) GetDispatchOrder(ctx context.Context, id int64) (*domain.DispatchOrder, error) {
	if err := s.enter(ctx, "GetDispatchOrder"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	o, ok := s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// GetDispatchOrderByCargo implements cargotx.DispatchRepository.
func (s *Store) GetDispatchOrderByCargo(ctx context.Context, cargoID int64) (*domain.DispatchOrder, error) {
	if err := s.enter(ctx, "GetDispatchOrderByCargo"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	for _, o := range s.st.orders {
		if o.CargoID == cargoID {
			return &o, nil
		}
	}
	return nil, nil
}

// UpdateDispatchOrder implements cargotx.DispatchRepository.
func (s *Store) UpdateDispatchOrder(ctx context.Context, o *domain.DispatchOrder) error {
	if err := s.enter(ctx, "UpdateDispatchOrder"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	stored, ok := s.st.orders[o.ID]
	if !ok {
		return apperr.NotFound("dispatcher order not found")
	}
	stored.AssignedDriverID = o.AssignedDriverID
	stored.UpdatedAt = s.now()
	o.UpdatedAt = stored.UpdatedAt
	s.st.orders[o.ID] = stored
	return nil
}

// GetTrackingByCargo implements cargotx.TrackingRepository.
func (s *Store) GetTrackingByCargo(ctx context.Context, cargoID int64) (*domain.Tracking, error) {
	if err := s.enter(ctx, "GetTrackingByCargo"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	t, ok := s.st.trackings[cargoID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// UpsertTracking implements cargotx.TrackingRepository.
func (s *Store) UpsertTracking(ctx context.Context, t *domain.Tracking) error {
	if err := s.enter(ctx, "UpsertTracking"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.st.cargos[t.CargoID]; !ok {
		return apperr.NotFound("cargo or vehicle not found")
	}
	if _, ok := s.st.vehicles[t.VehicleID]; !ok {
		return apperr.NotFound("cargo or vehicle not found")
	}
	if existing, ok := s.st.trackings[t.CargoID]; ok {
		t.ID = existing.ID
	} else {
		t.ID = s.nextID()
	}
	t.LastUpdated = s.now()
	s.st.trackings[t.CargoID] = *t
	return nil
}

// GetVehicle implements cargotx.TrackingRepository.
func (s *Store) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	if err := s.enter(ctx, "GetVehicle"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	v, ok := s.st.vehicles[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// EnsureConfirmation implements cargotx.ConfirmationRepository.
func (s *Store) EnsureConfirmation(ctx context.Context, cargoID int64) error {
	if err := s.enter(ctx, "EnsureConfirmation"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.st.cargos[cargoID]; !ok {
		return apperr.NotFound("cargo not found")
	}
	if _, ok := s.st.confirmations[cargoID]; !ok {
		s.st.confirmations[cargoID] = domain.DeliveryConfirmation{ID: s.nextID(), CargoID: cargoID}
	}
	return nil
}

// GetConfirmation implements cargotx.ConfirmationRepository.
func (s *Store) GetConfirmation(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error) {
	if err := s.enter(ctx, "GetConfirmation"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	d, ok := s.st.confirmations[cargoID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// GetConfirmationForUpdate implements cargotx.ConfirmationRepository.
func (s *Store) GetConfirmationForUpdate(ctx context.Context, cargoID int64) (*domain.DeliveryConfirmation, error) {
	if err := s.enter(ctx, "GetConfirmationForUpdate"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	d, ok := s.st.confirmations[cargoID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// UpdateConfirmation implements cargotx.ConfirmationRepository.
func (s *Store) UpdateConfirmation(ctx context.Context, d *domain.DeliveryConfirmation) error {
	if err := s.enter(ctx, "UpdateConfirmation"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	stored, ok := s.st.confirmations[d.CargoID]
	if !ok {
		return apperr.NotFound("delivery confirmation not found")
	}
	next := *d
	next.ID = stored.ID
	s.st.confirmations[d.CargoID] = next
	return nil
}

var _ cargotx.Store = (*Store)(nil)
