// Package service contains the business logic for the trip planner API.
// Services check capabilities, validate inputs with the planner rules, and
// orchestrate repo calls. No SQL lives here. Services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// defaultCurrency is applied to new trips that do not name one.
const defaultCurrency = "USD"

// TripPatch carries the trip fields a PUT may change. Nil fields keep their
// current value.
type TripPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips repo.TripRepo
	tx    repo.Transactor
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, tx repo.Transactor) *TripService {
	return &TripService{trips: trips, tx: tx}
}

// Create validates and persists a new trip owned by caller.
func (s *TripService) Create(ctx context.Context, caller domain.Caller, trip domain.Trip) (domain.Trip, error) {
	if caller.UserID == uuid.Nil {
		return domain.Trip{}, domain.ErrUnauthorized
	}
	trip.OwnerID = caller.UserID
	trip.StartDate = domain.DateOf(trip.StartDate)
	trip.EndDate = domain.DateOf(trip.EndDate)
	trip.Destinations = nil
	if trip.Budget.Currency == "" {
		trip.Budget.Currency = defaultCurrency
	}
	trip.Budget.Breakdown.Activities = 0
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if err := validateBudget(trip.Budget); err != nil {
		return domain.Trip{}, err
	}
	if err := validateCollaborators(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a trip the caller may view, with destinations sorted by order.
func (s *TripService) GetByID(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Trip, error) {
	trip, err := loadTrip(ctx, s.trips, caller, id, domain.CapView)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	trip.Destinations = trip.OrderedDestinations()
	return trip, nil
}

// ListPaged returns one page of trips the caller owns or collaborates on.
// Global admins see every trip.
func (s *TripService) ListPaged(ctx context.Context, caller domain.Caller, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	userID := caller.UserID
	if caller.Admin {
		userID = uuid.Nil
	} else if userID == uuid.Nil {
		return nil, 0, domain.ErrUnauthorized
	}
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, total, nil
	}
	for i := range trips {
		trips[i].Destinations = trips[i].OrderedDestinations()
	}
	return trips, total, nil
}

// Update changes a trip's name or dates. New dates must still contain every
// destination.
func (s *TripService) Update(ctx context.Context, caller domain.Caller, id uuid.UUID, patch TripPatch) (domain.Trip, error) {
	trip, err := loadTrip(ctx, s.trips, caller, id, domain.CapManage)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if patch.Name != nil {
		trip.Name = *patch.Name
	}
	if patch.StartDate != nil {
		trip.StartDate = domain.DateOf(*patch.StartDate)
	}
	if patch.EndDate != nil {
		trip.EndDate = domain.DateOf(*patch.EndDate)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if err := planner.WithinTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	result.Destinations = result.OrderedDestinations()
	return result, nil
}

// Delete removes a trip and all of its activities in one transaction.
func (s *TripService) Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	if _, err := loadTrip(ctx, s.trips, caller, id, domain.CapManage); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	err := s.tx.WithinTx(ctx, func(trips repo.TripRepo, activities repo.ActivityRepo) error {
		if _, err := activities.DeleteByTripID(ctx, id); err != nil {
			return err
		}
		return trips.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// loadTrip fetches a trip and checks that caller holds capability on it.
func loadTrip(ctx context.Context, trips repo.TripRepo, caller domain.Caller, id uuid.UUID, capability domain.Capability) (domain.Trip, error) {
	trip, err := trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if !trip.Can(caller, capability) {
		return domain.Trip{}, domain.ErrForbidden
	}
	return trip, nil
}

// validateCollaborators rejects unknown roles, duplicate users, and the owner
// listed as their own collaborator.
func validateCollaborators(trip domain.Trip) error {
	seen := make(map[uuid.UUID]bool, len(trip.Collaborators))
	for _, c := range trip.Collaborators {
		if !c.Role.Valid() {
			return fmt.Errorf("%w: unknown collaborator role %q", domain.ErrValidation, c.Role)
		}
		if c.UserID == uuid.Nil || c.UserID == trip.OwnerID || seen[c.UserID] {
			return fmt.Errorf("%w: collaborator %s is invalid or listed twice", domain.ErrValidation, c.UserID)
		}
		seen[c.UserID] = true
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - StartDate must be before EndDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !trip.StartDate.Before(trip.EndDate) {
		return fmt.Errorf("%w: startDate must be before endDate", domain.ErrValidation)
	}
	return nil
}
