package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a timed, costed event on one day of a trip.
//
// DestinationID links the activity to the stay it belongs to. City and Country
// are a snapshot taken when the activity was created; they are not kept in sync
// with the destination. Rows created before the link existed have a nil
// DestinationID and are matched by the snapshot instead.
type Activity struct {
	ID              uuid.UUID
	TripID          uuid.UUID
	DestinationID   *uuid.UUID
	City            string
	Country         string
	Title           string
	Notes           string
	Date            time.Time
	StartTime       ClockTime
	EndTime         ClockTime
	DurationMinutes int
	Cost            float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Overlaps reports whether a and o share any minute on the same day.
func (a Activity) Overlaps(o Activity) bool {
	if !DateOf(a.Date).Equal(DateOf(o.Date)) {
		return false
	}
	return Overlaps(a.StartTime, a.EndTime, o.StartTime, o.EndTime)
}

// BelongsTo reports whether a was scheduled under d. The direct link wins;
// unlinked rows fall back to the city/country snapshot.
func (a Activity) BelongsTo(d Destination) bool {
	if a.DestinationID != nil {
		return *a.DestinationID == d.ID
	}
	return a.City == d.City && a.Country == d.Country
}
