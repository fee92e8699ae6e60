package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create    func(ctx context.Context, caller domain.Caller, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, caller domain.Caller, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, caller domain.Caller, id uuid.UUID, patch service.TripPatch) (domain.Trip, error)
	delete    func(ctx context.Context, caller domain.Caller, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, c domain.Caller, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, c, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, c domain.Caller, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, c, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, c domain.Caller, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, c, p)
}
func (m *mockTripServicer) Update(ctx context.Context, c domain.Caller, id uuid.UUID, patch service.TripPatch) (domain.Trip, error) {
	return m.update(ctx, c, id, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, c domain.Caller, id uuid.UUID) error {
	return m.delete(ctx, c, id)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockDestinationServicer is a test double for handler.DestinationServicer.
type mockDestinationServicer struct {
	add     func(ctx context.Context, caller domain.Caller, tripID uuid.UUID, d domain.Destination) (domain.Destination, error)
	update  func(ctx context.Context, caller domain.Caller, tripID, destID uuid.UUID, patch service.DestinationPatch) (domain.Destination, error)
	remove  func(ctx context.Context, caller domain.Caller, tripID, destID uuid.UUID) (int64, error)
	reorder func(ctx context.Context, caller domain.Caller, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Destination, error)
}

func (m *mockDestinationServicer) Add(ctx context.Context, c domain.Caller, tripID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	return m.add(ctx, c, tripID, d)
}
func (m *mockDestinationServicer) Update(ctx context.Context, c domain.Caller, tripID, destID uuid.UUID, patch service.DestinationPatch) (domain.Destination, error) {
	return m.update(ctx, c, tripID, destID, patch)
}
func (m *mockDestinationServicer) Remove(ctx context.Context, c domain.Caller, tripID, destID uuid.UUID) (int64, error) {
	return m.remove(ctx, c, tripID, destID)
}
func (m *mockDestinationServicer) Reorder(ctx context.Context, c domain.Caller, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Destination, error) {
	return m.reorder(ctx, c, tripID, ids)
}

// compile-time check: mockDestinationServicer must satisfy handler.DestinationServicer.
var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

// mockActivityServicer is a test double for handler.ActivityServicer.
type mockActivityServicer struct {
	create    func(ctx context.Context, caller domain.Caller, a domain.Activity) (domain.Activity, error)
	listPaged func(ctx context.Context, caller domain.Caller, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error)
	update    func(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error)
	move      func(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID, targetDate time.Time) (domain.Activity, error)
	delete    func(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, c domain.Caller, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, c, a)
}
func (m *mockActivityServicer) ListPaged(ctx context.Context, c domain.Caller, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	return m.listPaged(ctx, c, tripID, p)
}
func (m *mockActivityServicer) Update(ctx context.Context, c domain.Caller, tripID, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error) {
	return m.update(ctx, c, tripID, activityID, patch)
}
func (m *mockActivityServicer) Move(ctx context.Context, c domain.Caller, tripID, activityID uuid.UUID, targetDate time.Time) (domain.Activity, error) {
	return m.move(ctx, c, tripID, activityID, targetDate)
}
func (m *mockActivityServicer) Delete(ctx context.Context, c domain.Caller, tripID, activityID uuid.UUID) error {
	return m.delete(ctx, c, tripID, activityID)
}

// compile-time check: mockActivityServicer must satisfy handler.ActivityServicer.
var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

// mockBudgetServicer is a test double for handler.BudgetServicer.
type mockBudgetServicer struct {
	getBreakdown func(ctx context.Context, caller domain.Caller, tripID uuid.UUID) (domain.BudgetSummary, error)
	updateBudget func(ctx context.Context, caller domain.Caller, tripID uuid.UUID, patch service.BudgetPatch) (domain.BudgetSummary, error)
	forecast     func(ctx context.Context, caller domain.Caller, tripID uuid.UUID) (domain.Forecast, error)
}

func (m *mockBudgetServicer) GetBreakdown(ctx context.Context, c domain.Caller, tripID uuid.UUID) (domain.BudgetSummary, error) {
	return m.getBreakdown(ctx, c, tripID)
}
func (m *mockBudgetServicer) UpdateBudget(ctx context.Context, c domain.Caller, tripID uuid.UUID, patch service.BudgetPatch) (domain.BudgetSummary, error) {
	return m.updateBudget(ctx, c, tripID, patch)
}
func (m *mockBudgetServicer) Forecast(ctx context.Context, c domain.Caller, tripID uuid.UUID) (domain.Forecast, error) {
	return m.forecast(ctx, c, tripID)
}

// compile-time check: mockBudgetServicer must satisfy handler.BudgetServicer.
var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var testCaller = domain.Caller{UserID: uuid.MustParse("00000000-0000-0000-0000-0000000000a1")}

// services bundles the mocks a test wires into the router. Nil fields are
// fine for endpoints the test never calls.
type services struct {
	trips        *mockTripServicer
	destinations *mockDestinationServicer
	activities   *mockActivityServicer
	budget       *mockBudgetServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// with authentication replaced by a fixed testCaller.
func newHTTPHandler(svc services) http.Handler {
	srv := handler.NewServer(svc.trips, svc.destinations, svc.activities, svc.budget, nil)
	asTestCaller := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), testCaller)))
		})
	}
	return srv.Routes(asTestCaller)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

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
