package domain

import "time"

// Breakdown splits a trip budget into categories. Activities is always derived
// from the trip's activity costs; the other four are lump sums set by the owner.
type Breakdown struct {
	Accommodation  float64
	Transportation float64
	Activities     float64
	Food           float64
	Other          float64
}

// LumpTotal is the sum of the four owner-entered categories.
func (b Breakdown) LumpTotal() float64 {
	return b.Accommodation + b.Transportation + b.Food + b.Other
}

// Budget is the money side of a trip.
type Budget struct {
	Total     float64
	Currency  string
	Breakdown Breakdown
}

// DayBreakdown is the spend attributed to a single trip day.
type DayBreakdown struct {
	Date           time.Time
	Accommodation  float64
	Transportation float64
	Activities     float64
	Food           float64
	Other          float64
	Total          float64
}

// BudgetSummary is a reconciled view of a trip's budget.
// Daily is ordered by Date.
type BudgetSummary struct {
	Total     float64
	Currency  string
	Breakdown Breakdown
	Daily     []DayBreakdown
}
