package planner

import (
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DayStart is where first-fit placement begins scanning each day.
const DayStart = domain.ClockTime(9 * 60)

// Slot is a start and end time on a single day.
type Slot struct {
	Start domain.ClockTime
	End   domain.ClockTime
}

// Duration returns the minutes between start and end, or ErrValidation when
// end is not after start.
func Duration(start, end domain.ClockTime) (int, error) {
	if end <= start {
		return 0, fmt.Errorf("%w: startTime %s must be before endTime %s", domain.ErrValidation, start, end)
	}
	return int(end - start), nil
}

// FirstFit places an activity lasting duration minutes on a day that already
// holds existing. It scans forward from DayStart in start-time order and takes
// the first gap at least duration long; if none exists the slot goes right
// after the last activity. There is no end-of-day limit.
//
// The cursor never moves backwards, so activities that end before DayStart and
// existing schedules that overlap each other are both handled.
func FirstFit(existing []domain.Activity, duration int) Slot {
	day := slices.Clone(existing)
	slices.SortStableFunc(day, func(a, b domain.Activity) int { return int(a.StartTime) - int(b.StartTime) })

	cursor := DayStart
	for _, a := range day {
		if int(a.StartTime-cursor) >= duration {
			break
		}
		cursor = max(cursor, a.EndTime)
	}
	return Slot{Start: cursor, End: cursor.Add(duration)}
}
