// Package domain contains the core data types for the trip planner.
// This package has no dependencies beyond uuid and is imported by every
// other internal package (planner, repo, service, handler).
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate. It exclusively owns its destinations
// (embedded, no identity outside the trip) and is referenced by its
// activities, which live in their own table.
type Trip struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	StartDate     time.Time
	EndDate       time.Time
	Destinations  []Destination
	Collaborators []Collaborator
	Budget        Budget

	// Version is incremented on every write. Repos reject a write whose
	// Version does not match the stored row with ErrConflict.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Span returns the trip's date range.
func (t Trip) Span() DateRange {
	return DateRange{Start: t.StartDate, End: t.EndDate}
}

// DurationDays is the number of days between start and end, rounded up,
// minimum 1.
func (t Trip) DurationDays() int {
	return t.Span().Days()
}

// Days lists each calendar day of the trip, starting at StartDate, one per
// DurationDays.
func (t Trip) Days() []time.Time {
	n := t.DurationDays()
	start := DateOf(t.StartDate)
	days := make([]time.Time, n)
	for i := range n {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// FindDestination returns the destination with the given id and its index in
// t.Destinations.
func (t Trip) FindDestination(id uuid.UUID) (Destination, int, bool) {
	for i, d := range t.Destinations {
		if d.ID == id {
			return d, i, true
		}
	}
	return Destination{}, -1, false
}

// OrderedDestinations returns a copy of the destinations sorted by Order.
func (t Trip) OrderedDestinations() []Destination {
	out := slices.Clone(t.Destinations)
	slices.SortStableFunc(out, func(a, b Destination) int { return a.Order - b.Order })
	return out
}
