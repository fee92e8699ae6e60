package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// DestinationPatch carries the destination fields an update may change.
// Nil fields fall back to the destination's current value.
type DestinationPatch struct {
	City          *string
	Country       *string
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	Budget        *float64
}

// DestinationService keeps a trip's stays ordered and non-overlapping.
// Every operation validates completely before its single write, and the write
// is rejected with domain.ErrConflict if the trip changed since it was read.
type DestinationService struct {
	trips repo.TripRepo
	tx    repo.Transactor
}

// NewDestinationService constructs a DestinationService backed by the provided repos.
func NewDestinationService(trips repo.TripRepo, tx repo.Transactor) *DestinationService {
	return &DestinationService{trips: trips, tx: tx}
}

// Add appends a stay to the trip with order = number of existing stays.
// Returns domain.ErrValidation, domain.ErrOutOfBounds or domain.ErrOverlap
// when the stay is rejected.
func (s *DestinationService) Add(ctx context.Context, caller domain.Caller, tripID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	trip, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapManage)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Add: %w", err)
	}

	d.ID = uuid.New()
	d.ArrivalDate = domain.DateOf(d.ArrivalDate)
	d.DepartureDate = domain.DateOf(d.DepartureDate)
	if err := planner.CheckStay(trip, d); err != nil {
		return domain.Destination{}, err
	}
	d.Order = len(trip.Destinations)
	trip.Destinations = append(trip.Destinations, d)

	if _, err := s.trips.Update(ctx, trip); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Add: %w", err)
	}
	return d, nil
}

// Update merges patch into the stay and re-runs the Add checks, ignoring the
// stay itself in the overlap check.
func (s *DestinationService) Update(ctx context.Context, caller domain.Caller, tripID, destID uuid.UUID, patch DestinationPatch) (domain.Destination, error) {
	trip, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapManage)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	current, idx, ok := trip.FindDestination(destID)
	if !ok {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: destination: %w", domain.ErrNotFound)
	}

	merged := current
	if patch.City != nil {
		merged.City = *patch.City
	}
	if patch.Country != nil {
		merged.Country = *patch.Country
	}
	if patch.ArrivalDate != nil {
		merged.ArrivalDate = domain.DateOf(*patch.ArrivalDate)
	}
	if patch.DepartureDate != nil {
		merged.DepartureDate = domain.DateOf(*patch.DepartureDate)
	}
	if patch.Budget != nil {
		b := *patch.Budget
		merged.Budget = &b
	}
	if err := planner.CheckStay(trip, merged); err != nil {
		return domain.Destination{}, err
	}

	trip.Destinations[idx] = merged
	if _, err := s.trips.Update(ctx, trip); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return merged, nil
}

// Remove deletes a stay and the activities scheduled under it, in one
// transaction. Surviving stays keep their order values. Returns the number of
// activities removed.
func (s *DestinationService) Remove(ctx context.Context, caller domain.Caller, tripID, destID uuid.UUID) (int64, error) {
	trip, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapManage)
	if err != nil {
		return 0, fmt.Errorf("service.DestinationService.Remove: %w", err)
	}
	removed, idx, ok := trip.FindDestination(destID)
	if !ok {
		return 0, fmt.Errorf("service.DestinationService.Remove: destination: %w", domain.ErrNotFound)
	}
	trip.Destinations = append(trip.Destinations[:idx:idx], trip.Destinations[idx+1:]...)

	var cascaded int64
	err = s.tx.WithinTx(ctx, func(trips repo.TripRepo, activities repo.ActivityRepo) error {
		if _, err := trips.Update(ctx, trip); err != nil {
			return err
		}
		n, err := activities.DeleteByDestination(ctx, tripID, removed)
		cascaded = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("service.DestinationService.Remove: %w", err)
	}
	return cascaded, nil
}

// Reorder sets order = index for each id. ids must be a permutation of the
// trip's destination ids; anything else fails with domain.ErrValidation and
// leaves the stored order untouched. Submitting the same ids twice yields the
// same state.
func (s *DestinationService) Reorder(ctx context.Context, caller domain.Caller, tripID uuid.UUID, ids []uuid.UUID) ([]domain.Destination, error) {
	trip, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapManage)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	ordered, err := planner.Reorder(trip.Destinations, ids)
	if err != nil {
		return nil, err
	}
	trip.Destinations = ordered

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	return result.OrderedDestinations(), nil
}
