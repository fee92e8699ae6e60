package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
)

func levels(f domain.Forecast) []domain.AdvisoryLevel {
	out := make([]domain.AdvisoryLevel, 0, len(f.Advisories))
	for _, a := range f.Advisories {
		out = append(out, a.Level)
	}
	return out
}

func forecastFor(total float64, acts []domain.Activity) domain.Forecast {
	trip := augustTrip()
	trip.Budget.Total = total
	trip.Budget.Currency = "USD"
	summary := planner.Reconcile(trip, acts)
	return planner.Forecast(summary, trip.DurationDays(), acts, planner.DefaultThresholds())
}

// everyDay spreads cost over two activities on each of the nine trip days, so
// neither the free-day nor the expensive-activity advisory fires.
func everyDay(cost float64) []domain.Activity {
	acts := make([]domain.Activity, 0, 18)
	for day := 1; day <= 9; day++ {
		acts = append(acts,
			activityAt(day, "09:00", "10:00", cost/18),
			activityAt(day, "11:00", "12:00", cost/18),
		)
	}
	return acts
}

func TestForecast_WarningOnly(t *testing.T) {
	f := forecastFor(1000, everyDay(850))

	assert.InDelta(t, 85, f.SpendingPercentage, 1e-9)
	assert.InDelta(t, 150, f.RemainingBudget, 1e-9)
	assert.Equal(t, []domain.AdvisoryLevel{domain.AdvisoryWarning}, levels(f))
}

func TestForecast_WarningAndDanger(t *testing.T) {
	f := forecastFor(1000, everyDay(1050))

	assert.InDelta(t, 105, f.SpendingPercentage, 1e-9)
	assert.InDelta(t, -50, f.RemainingBudget, 1e-9)
	assert.Equal(t, []domain.AdvisoryLevel{domain.AdvisoryWarning, domain.AdvisoryDanger}, levels(f))
	assert.Contains(t, f.Advisories[1].Message, "50.00 USD")
}

func TestForecast_ExpensiveActivities(t *testing.T) {
	acts := everyDay(90)
	acts = append(acts, activityAt(3, "14:00", "16:00", 150), activityAt(4, "14:00", "16:00", 101))

	f := forecastFor(1000, acts)

	assert.Equal(t, 2, f.ExpensiveActivities)
	require.Equal(t, []domain.AdvisoryLevel{domain.AdvisoryInfo}, levels(f))
	assert.Contains(t, f.Advisories[0].Message, "2 activities")
}

func TestForecast_FreeDays(t *testing.T) {
	acts := []domain.Activity{
		activityAt(1, "09:00", "10:00", 10),
		activityAt(1, "11:00", "12:00", 10),
		activityAt(2, "09:00", "10:00", 10),
	}

	f := forecastFor(1000, acts)

	assert.Equal(t, 7, f.FreeDays)
	assert.Equal(t, []domain.AdvisoryLevel{domain.AdvisorySuccess}, levels(f))
}

func TestForecast_ZeroTotal(t *testing.T) {
	f := forecastFor(0, everyDay(0))

	assert.Zero(t, f.SpendingPercentage)
	assert.Empty(t, f.Advisories)
}

func TestForecast_CustomThresholds(t *testing.T) {
	trip := augustTrip()
	trip.Budget.Total = 100
	acts := everyDay(60)
	summary := planner.Reconcile(trip, acts)

	f := planner.Forecast(summary, trip.DurationDays(), acts,
		planner.Thresholds{WarningPercent: 50, DangerPercent: 55, ExpensiveRatio: 1})

	assert.Equal(t, []domain.AdvisoryLevel{domain.AdvisoryWarning, domain.AdvisoryDanger}, levels(f))
	assert.Equal(t, "You have passed the 55% spending limit.", f.Advisories[1].Message)
	assert.NotContains(t, f.Advisories[1].Message, "-")
}
