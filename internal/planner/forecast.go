package planner

import (
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Thresholds tune when forecast advisories fire.
type Thresholds struct {
	// WarningPercent fires a warning when spending exceeds this share of the total.
	WarningPercent float64
	// DangerPercent fires a danger advisory when spending exceeds this share.
	DangerPercent float64
	// ExpensiveRatio flags an activity costing more than this fraction of the total.
	ExpensiveRatio float64
}

// DefaultThresholds returns the stock advisory thresholds: 80%, 100%, 10%.
func DefaultThresholds() Thresholds {
	return Thresholds{WarningPercent: 80, DangerPercent: 100, ExpensiveRatio: 0.10}
}

// Forecast compares current spending against the reconciled budget.
// Every advisory is evaluated on its own, so an overspent trip gets both the
// warning and the danger message.
func Forecast(summary domain.BudgetSummary, durationDays int, activities []domain.Activity, th Thresholds) domain.Forecast {
	spent := summary.Breakdown.Activities
	f := domain.Forecast{
		Total:           summary.Total,
		Currency:        summary.Currency,
		CurrentSpending: spent,
		RemainingBudget: summary.Total - spent,
		Advisories:      []domain.Advisory{},
	}
	if summary.Total > 0 {
		f.SpendingPercentage = spent / summary.Total * 100
	}

	if f.SpendingPercentage > th.WarningPercent {
		f.Advisories = append(f.Advisories, domain.Advisory{
			Level:   domain.AdvisoryWarning,
			Message: fmt.Sprintf("You have used %.0f%% of your budget.", f.SpendingPercentage),
		})
	}
	if f.SpendingPercentage > th.DangerPercent {
		msg := fmt.Sprintf("You have passed the %.0f%% spending limit.", th.DangerPercent)
		if f.RemainingBudget < 0 {
			msg = fmt.Sprintf("You are over budget by %.2f %s.", -f.RemainingBudget, summary.Currency)
		}
		f.Advisories = append(f.Advisories, domain.Advisory{Level: domain.AdvisoryDanger, Message: msg})
	}

	limit := summary.Total * th.ExpensiveRatio
	days := make(map[time.Time]struct{})
	for _, a := range activities {
		if a.Cost > limit {
			f.ExpensiveActivities++
		}
		days[domain.DateOf(a.Date)] = struct{}{}
	}
	if f.ExpensiveActivities > 0 {
		f.Advisories = append(f.Advisories, domain.Advisory{
			Level: domain.AdvisoryInfo,
			Message: fmt.Sprintf("%d %s cost more than %.0f%% of the total budget.",
				f.ExpensiveActivities, plural(f.ExpensiveActivities, "activity", "activities"), th.ExpensiveRatio*100),
		})
	}

	f.FreeDays = max(0, durationDays-len(days))
	if f.FreeDays > 0 {
		f.Advisories = append(f.Advisories, domain.Advisory{
			Level:   domain.AdvisorySuccess,
			Message: fmt.Sprintf("%d free %s left to plan.", f.FreeDays, plural(f.FreeDays, "day", "days")),
		})
	}
	return f
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
