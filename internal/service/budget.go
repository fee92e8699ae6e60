package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// currencyPattern matches an ISO 4217 style code such as "USD" or "EUR".
var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// BudgetPatch carries the budget fields an owner may set directly.
// The activities category is derived and has no field here.
type BudgetPatch struct {
	Total          *float64
	Currency       *string
	Accommodation  *float64
	Transportation *float64
	Food           *float64
	Other          *float64
}

// BudgetService reconciles a trip's lump budget with its itemized activities
// and produces forecasts from the result.
type BudgetService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	log        *slog.Logger
	thresholds planner.Thresholds
}

// NewBudgetService constructs a BudgetService. A nil logger falls back to
// slog.Default().
func NewBudgetService(trips repo.TripRepo, activities repo.ActivityRepo, log *slog.Logger, th planner.Thresholds) *BudgetService {
	if log == nil {
		log = slog.Default()
	}
	return &BudgetService{trips: trips, activities: activities, log: log, thresholds: th}
}

// GetBreakdown returns the reconciled budget of a trip.
// When the stored activities figure has drifted from the activity records it
// is written back. A failed write-back is logged and does not fail the read.
func (s *BudgetService) GetBreakdown(ctx context.Context, caller domain.Caller, tripID uuid.UUID) (domain.BudgetSummary, error) {
	trip, acts, err := s.load(ctx, caller, tripID, domain.CapView)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.GetBreakdown: %w", err)
	}
	summary := planner.Reconcile(trip, acts)

	if summary.Breakdown.Activities != trip.Budget.Breakdown.Activities {
		trip.Budget.Breakdown.Activities = summary.Breakdown.Activities
		if _, err := s.trips.Update(ctx, trip); err != nil {
			s.log.WarnContext(ctx, "budget write-back failed",
				slog.String("trip_id", tripID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return summary, nil
}

// UpdateBudget applies patch to the trip's budget and returns the reconciled
// result. Only the owner (or a global admin) may call it.
func (s *BudgetService) UpdateBudget(ctx context.Context, caller domain.Caller, tripID uuid.UUID, patch BudgetPatch) (domain.BudgetSummary, error) {
	trip, acts, err := s.load(ctx, caller, tripID, domain.CapManage)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.UpdateBudget: %w", err)
	}

	b := &trip.Budget
	if patch.Total != nil {
		b.Total = *patch.Total
	}
	if patch.Currency != nil {
		b.Currency = *patch.Currency
	}
	if patch.Accommodation != nil {
		b.Breakdown.Accommodation = *patch.Accommodation
	}
	if patch.Transportation != nil {
		b.Breakdown.Transportation = *patch.Transportation
	}
	if patch.Food != nil {
		b.Breakdown.Food = *patch.Food
	}
	if patch.Other != nil {
		b.Breakdown.Other = *patch.Other
	}
	b.Breakdown.Activities = planner.ActivityCost(acts)
	if err := validateBudget(*b); err != nil {
		return domain.BudgetSummary{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.UpdateBudget: %w", err)
	}
	return planner.Reconcile(updated, acts), nil
}

// Forecast returns spending advisories for the trip.
func (s *BudgetService) Forecast(ctx context.Context, caller domain.Caller, tripID uuid.UUID) (domain.Forecast, error) {
	trip, acts, err := s.load(ctx, caller, tripID, domain.CapView)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("service.BudgetService.Forecast: %w", err)
	}
	summary := planner.Reconcile(trip, acts)
	return planner.Forecast(summary, trip.DurationDays(), acts, s.thresholds), nil
}

func (s *BudgetService) load(ctx context.Context, caller domain.Caller, tripID uuid.UUID, capability domain.Capability) (domain.Trip, []domain.Activity, error) {
	trip, err := loadTrip(ctx, s.trips, caller, tripID, capability)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	acts, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	return trip, acts, nil
}

// validateBudget rejects negative amounts and malformed currency codes.
func validateBudget(b domain.Budget) error {
	if b.Total < 0 {
		return fmt.Errorf("%w: budget total must not be negative", domain.ErrValidation)
	}
	if !currencyPattern.MatchString(b.Currency) {
		return fmt.Errorf("%w: currency must be a three-letter uppercase code", domain.ErrValidation)
	}
	lumps := map[string]float64{
		"accommodation":  b.Breakdown.Accommodation,
		"transportation": b.Breakdown.Transportation,
		"food":           b.Breakdown.Food,
		"other":          b.Breakdown.Other,
	}
	for name, v := range lumps {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, name)
		}
	}
	return nil
}
