package domain

import (
	"cmp"
	"math"
	"time"
)

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

// Overlaps reports whether the half-open intervals [a1,a2) and [b1,b2)
// intersect. Touching endpoints (a2 == b1) do not overlap.
func Overlaps[T cmp.Ordered](a1, a2, b1, b2 T) bool {
	return a1 < b2 && b1 < a2
}

// DateRange is a half-open range of calendar days [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether r and o share at least one instant.
func (r DateRange) Overlaps(o DateRange) bool {
	return Overlaps(r.Start.Unix(), r.End.Unix(), o.Start.Unix(), o.End.Unix())
}

// Within reports whether r lies inside the closed range [outer.Start, outer.End].
func (r DateRange) Within(outer DateRange) bool {
	return !r.Start.Before(outer.Start) && !r.End.After(outer.End)
}

// Days returns the number of days spanned by r, rounded up, never less than 1.
func (r DateRange) Days() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
