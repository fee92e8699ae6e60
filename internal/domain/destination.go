package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a stay in one city during a trip, covering the half-open
// range [ArrivalDate, DepartureDate). Order is 0-based and unique per trip.
type Destination struct {
	ID            uuid.UUID
	City          string
	Country       string
	ArrivalDate   time.Time
	DepartureDate time.Time
	Order         int
	Budget        *float64 // nil when no per-stay budget was given
}

// Stay returns the destination's date range.
func (d Destination) Stay() DateRange {
	return DateRange{Start: d.ArrivalDate, End: d.DepartureDate}
}
