package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockActivityRepo is a hand-written test double for repo.ActivityRepo.
type mockActivityRepo struct {
	create              func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID             func(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)
	listByTripID        func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	listByTripIDPaged   func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error)
	listByDate          func(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.Activity, error)
	update              func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	delete              func(ctx context.Context, tripID, activityID uuid.UUID) error
	deleteByDestination func(ctx context.Context, tripID uuid.UUID, d domain.Destination) (int64, error)
	deleteByTripID      func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, tripID, activityID)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockActivityRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	return m.listByTripIDPaged(ctx, tripID, p)
}
func (m *mockActivityRepo) ListByDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.Activity, error) {
	return m.listByDate(ctx, tripID, date)
}
func (m *mockActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, a)
}
func (m *mockActivityRepo) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	return m.delete(ctx, tripID, activityID)
}
func (m *mockActivityRepo) DeleteByDestination(ctx context.Context, tripID uuid.UUID, d domain.Destination) (int64, error) {
	return m.deleteByDestination(ctx, tripID, d)
}
func (m *mockActivityRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.deleteByTripID(ctx, tripID)
}

// compile-time check: mockActivityRepo must satisfy repo.ActivityRepo.
var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

// fakeTransactor runs fn directly against the given mocks. It does not roll
// anything back; tests that need rollback semantics live in the repo package.
type fakeTransactor struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

func (f *fakeTransactor) WithinTx(_ context.Context, fn func(repo.TripRepo, repo.ActivityRepo) error) error {
	return fn(f.trips, f.activities)
}

// compile-time check: fakeTransactor must satisfy repo.Transactor.
var _ repo.Transactor = (*fakeTransactor)(nil)

// ---- fixtures --------------------------------------------------------------

var (
	ownerID  = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	editorID = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")
	viewerID = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	tripID   = uuid.MustParse("00000000-0000-0000-0000-000000000001")

	owner  = domain.Caller{UserID: ownerID}
	editor = domain.Caller{UserID: editorID}
	viewer = domain.Caller{UserID: viewerID}
)

func aug(day int) time.Time {
	return time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC)
}

func clock(s string) domain.ClockTime {
	c, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// augustTrip spans Aug 1–10 with an editor and a viewer collaborator.
func augustTrip() domain.Trip {
	return domain.Trip{
		ID:        tripID,
		OwnerID:   ownerID,
		Name:      "Summer in Europe",
		StartDate: aug(1),
		EndDate:   aug(10),
		Collaborators: []domain.Collaborator{
			{UserID: editorID, Role: domain.RoleEditor},
			{UserID: viewerID, Role: domain.RoleViewer},
		},
		Budget:  domain.Budget{Total: 1000, Currency: "EUR"},
		Version: 1,
	}
}

// tripStore is an in-memory TripRepo holding a single trip. Update enforces
// the version check the same way the Postgres repo does.
type tripStore struct {
	trip    domain.Trip
	updates int
}

func newTripStore(trip domain.Trip) *tripStore {
	return &tripStore{trip: trip}
}

func (s *tripStore) repo() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != s.trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			t := s.trip
			t.Destinations = append([]domain.Destination(nil), s.trip.Destinations...)
			return t, nil
		},
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			if t.Version != s.trip.Version {
				return domain.Trip{}, domain.ErrConflict
			}
			t.Version++
			t.Destinations = append([]domain.Destination(nil), t.Destinations...)
			s.trip = t
			s.updates++
			return t, nil
		},
	}
}

func activityAt(date time.Time, start, end string, cost float64) domain.Activity {
	s, e := clock(start), clock(end)
	return domain.Activity{
		ID:              uuid.New(),
		TripID:          tripID,
		Title:           start + " activity",
		Date:            date,
		StartTime:       s,
		EndTime:         e,
		DurationMinutes: int(e - s),
		Cost:            cost,
	}
}
