package planner_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// aug returns midnight UTC on the given day of August 2025.
func aug(day int) time.Time {
	return time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC)
}

func clock(s string) domain.ClockTime {
	c, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// augustTrip spans Aug 1–10 (9 days) with no destinations.
func augustTrip() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Name:      "Summer",
		StartDate: aug(1),
		EndDate:   aug(10),
	}
}

func stay(city string, from, to int) domain.Destination {
	return domain.Destination{
		ID:            uuid.New(),
		City:          city,
		Country:       "PT",
		ArrivalDate:   aug(from),
		DepartureDate: aug(to),
	}
}

func activityAt(day int, start, end string, cost float64) domain.Activity {
	s, e := clock(start), clock(end)
	return domain.Activity{
		ID:              uuid.New(),
		Date:            aug(day),
		StartTime:       s,
		EndTime:         e,
		DurationMinutes: int(e - s),
		Cost:            cost,
	}
}
