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

// ActivityPatch carries a quick edit. Nil fields keep their current value.
// When DurationMinutes is set without EndTime, the end is start + duration.
type ActivityPatch struct {
	Title           *string
	Notes           *string
	Date            *time.Time
	StartTime       *domain.ClockTime
	EndTime         *domain.ClockTime
	DurationMinutes *int
	Cost            *float64
}

// ActivityService places and edits timed activities.
//
// Only Move looks at the other activities of the day. Create and quick edits
// honour the times they are given, even if they collide with something else;
// resolving that is left to the caller.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the times, derives the duration and persists the activity
// as given. When DestinationID is set, the city/country snapshot is copied
// from that destination.
func (s *ActivityService) Create(ctx context.Context, caller domain.Caller, a domain.Activity) (domain.Activity, error) {
	trip, err := loadTrip(ctx, s.trips, caller, a.TripID, domain.CapEditActivities)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if a.DestinationID != nil {
		d, _, ok := trip.FindDestination(*a.DestinationID)
		if !ok {
			return domain.Activity{}, fmt.Errorf("%w: destination %s is not part of this trip", domain.ErrValidation, *a.DestinationID)
		}
		a.City, a.Country = d.City, d.Country
	}
	a.Date = domain.DateOf(a.Date)
	if a.DurationMinutes, err = planner.Duration(a.StartTime, a.EndTime); err != nil {
		return domain.Activity{}, err
	}
	if err := validateCost(a.Cost); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of a trip's activities ordered by date and start time.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListPaged(ctx context.Context, caller domain.Caller, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	if _, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapView); err != nil {
		return nil, 0, fmt.Errorf("service.ActivityService.ListPaged: %w", err)
	}
	acts, total, err := s.activities.ListByTripIDPaged(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ActivityService.ListPaged: %w", err)
	}
	if acts == nil {
		return []domain.Activity{}, total, nil
	}
	return acts, total, nil
}

// Update applies a quick edit. No collision check is made against the rest of
// the day.
func (s *ActivityService) Update(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID, patch ActivityPatch) (domain.Activity, error) {
	if _, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapEditActivities); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	a, err := s.activities.GetByID(ctx, tripID, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.Date != nil {
		a.Date = domain.DateOf(*patch.Date)
	}
	if patch.Cost != nil {
		if err := validateCost(*patch.Cost); err != nil {
			return domain.Activity{}, err
		}
		a.Cost = *patch.Cost
	}
	if patch.StartTime != nil {
		a.StartTime = *patch.StartTime
	}
	switch {
	case patch.EndTime != nil:
		a.EndTime = *patch.EndTime
	case patch.DurationMinutes != nil:
		a.EndTime = a.StartTime.Add(*patch.DurationMinutes)
	case patch.StartTime != nil:
		// Moving only the start keeps the length.
		a.EndTime = a.StartTime.Add(a.DurationMinutes)
	}
	if a.DurationMinutes, err = planner.Duration(a.StartTime, a.EndTime); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Update(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Move reschedules an activity onto targetDate at the first free slot of
// its length, scanning from 09:00. The activity keeps its duration.
func (s *ActivityService) Move(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID, targetDate time.Time) (domain.Activity, error) {
	if _, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapEditActivities); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	a, err := s.activities.GetByID(ctx, tripID, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Move: %w", err)
	}

	day := domain.DateOf(targetDate)
	existing, err := s.activities.ListByDate(ctx, tripID, day)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	others := existing[:0:0]
	for _, e := range existing {
		if e.ID != a.ID {
			others = append(others, e)
		}
	}

	duration := a.DurationMinutes
	if duration <= 0 {
		if duration, err = planner.Duration(a.StartTime, a.EndTime); err != nil {
			return domain.Activity{}, err
		}
	}
	slot := planner.FirstFit(others, duration)
	a.Date = day
	a.StartTime, a.EndTime, a.DurationMinutes = slot.Start, slot.End, duration

	result, err := s.activities.Update(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	return result, nil
}

// Delete removes a single activity.
func (s *ActivityService) Delete(ctx context.Context, caller domain.Caller, tripID, activityID uuid.UUID) error {
	if _, err := loadTrip(ctx, s.trips, caller, tripID, domain.CapEditActivities); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if err := s.activities.Delete(ctx, tripID, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

func validateCost(cost float64) error {
	if cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	return nil
}
