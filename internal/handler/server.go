// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, caller domain.Caller, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, caller domain.Caller, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, caller domain.Caller, id uuid.UUID, patch service.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error
}

// DestinationServicer defines the destination scheduling operations.
type DestinationServicer interface {
	Add(ctx context.Context, caller domain.Caller, tripID uuid.UUID, d domain.Destination) (domain.Destination, error)
	Update(ctx context.Context, caller domain.Caller, tripID, destID uuid.UUID, patch service.DestinationPatch) (domain.Destination, error)
	Remove(ctx context.Context, caller domain.Caller, tripID, destID uuid.UUID) (int64, error)
	Reorder(ctx context.Context, caller domain.Caller, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Destination, error)
}

// ActivityServicer defines the activity placement operations.
type ActivityServicer interface {
	Create(ctx context.Context, caller domain.Caller, a domain.Activity) (domain.Activity, error)
	ListPaged(ctx context.Context, caller domain.Caller, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error)
	Update(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error)
	Move(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID, targetDate time.Time) (domain.Activity, error)
	Delete(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID) error
}

// BudgetServicer defines the budget reconciliation and forecast operations.
type BudgetServicer interface {
	GetBreakdown(ctx context.Context, caller domain.Caller, tripID uuid.UUID) (domain.BudgetSummary, error)
	UpdateBudget(ctx context.Context, caller domain.Caller, tripID uuid.UUID, patch service.BudgetPatch) (domain.BudgetSummary, error)
	Forecast(ctx context.Context, caller domain.Caller, tripID uuid.UUID) (domain.Forecast, error)
}

// Server holds the services behind every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips        TripServicer
	destinations DestinationServicer
	activities   ActivityServicer
	budget       BudgetServicer
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, destinations DestinationServicer, activities ActivityServicer, budget BudgetServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, destinations: destinations, activities: activities, budget: budget, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes returns the API router. authenticate guards every route except
// /healthz and /openapi.yaml; it must store the caller with auth.WithCaller.
func (s *Server) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Post("/destinations", s.AddDestination)
				r.Put("/destinations/reorder", s.ReorderDestinations)
				r.Put("/destinations/{destinationId}", s.UpdateDestination)
				r.Delete("/destinations/{destinationId}", s.RemoveDestination)

				r.Post("/activities", s.CreateActivity)
				r.Get("/activities", s.ListActivities)
				r.Post("/activities/move", s.MoveActivity)
				r.Patch("/activities/{activityId}", s.UpdateActivity)
				r.Delete("/activities/{activityId}", s.DeleteActivity)
			})
		})

		r.Route("/budget/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetBudget)
			r.Put("/", s.UpdateBudget)
			r.Get("/forecast", s.GetForecast)
		})
	})
	return r
}
