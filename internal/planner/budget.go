package planner

import (
	"slices"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ActivityCost sums the cost of every activity.
func ActivityCost(activities []domain.Activity) float64 {
	var sum float64
	for _, a := range activities {
		sum += a.Cost
	}
	return sum
}

// Reconcile derives the budget view of trip from its activities.
//
// Breakdown.Activities is always recomputed from activities; whatever was
// stored on the trip for that field is discarded. The four lump categories are
// spread evenly over every trip day whether or not anything is scheduled that
// day. Activities dated outside the trip's days get their own entry carrying
// only their activity cost, so the daily totals always add up to the lump
// total plus the activity total.
func Reconcile(trip domain.Trip, activities []domain.Activity) domain.BudgetSummary {
	b := trip.Budget.Breakdown
	b.Activities = ActivityCost(activities)

	n := float64(trip.DurationDays())
	share := domain.DayBreakdown{
		Accommodation:  b.Accommodation / n,
		Transportation: b.Transportation / n,
		Food:           b.Food / n,
		Other:          b.Other / n,
	}

	byDay := make(map[time.Time]*domain.DayBreakdown)
	for _, day := range trip.Days() {
		d := share
		d.Date = day
		byDay[day] = &d
	}
	for _, a := range activities {
		day := domain.DateOf(a.Date)
		d, ok := byDay[day]
		if !ok {
			d = &domain.DayBreakdown{Date: day}
			byDay[day] = d
		}
		d.Activities += a.Cost
	}

	daily := make([]domain.DayBreakdown, 0, len(byDay))
	for _, d := range byDay {
		d.Total = d.Accommodation + d.Transportation + d.Activities + d.Food + d.Other
		daily = append(daily, *d)
	}
	slices.SortFunc(daily, func(x, y domain.DayBreakdown) int { return x.Date.Compare(y.Date) })

	return domain.BudgetSummary{
		Total:     trip.Budget.Total,
		Currency:  trip.Budget.Currency,
		Breakdown: b,
		Daily:     daily,
	}
}
