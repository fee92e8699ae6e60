package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CheckStay validates candidate against trip. The destination whose ID equals
// candidate.ID is ignored in the overlap check, so the same function serves
// both add and update.
//
// Checks run in order and the first failure is returned:
//   - city and country are required, arrival must be before departure (ErrValidation)
//   - the stay must lie within the trip's dates (ErrOutOfBounds)
//   - the stay must not overlap any other stay (ErrOverlap)
func CheckStay(trip domain.Trip, candidate domain.Destination) error {
	if strings.TrimSpace(candidate.City) == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if strings.TrimSpace(candidate.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if !candidate.ArrivalDate.Before(candidate.DepartureDate) {
		return fmt.Errorf("%w: arrivalDate must be before departureDate", domain.ErrValidation)
	}
	if candidate.Budget != nil && *candidate.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if !candidate.Stay().Within(trip.Span()) {
		return fmt.Errorf("%w: stay %s–%s is outside trip %s–%s", domain.ErrOutOfBounds,
			candidate.ArrivalDate.Format(domain.DateLayout), candidate.DepartureDate.Format(domain.DateLayout),
			trip.StartDate.Format(domain.DateLayout), trip.EndDate.Format(domain.DateLayout))
	}

	var clashes []string
	for _, d := range trip.Destinations {
		if d.ID == candidate.ID {
			continue
		}
		if d.Stay().Overlaps(candidate.Stay()) {
			clashes = append(clashes, fmt.Sprintf("%s, %s", d.City, d.Country))
		}
	}
	if len(clashes) > 0 {
		return fmt.Errorf("%w: stay overlaps %s", domain.ErrOverlap, strings.Join(clashes, "; "))
	}
	return nil
}

// Reorder assigns Order = index for each id in ids and returns the
// destinations in that order. ids must be exactly a permutation of the
// current destination ids; otherwise ErrValidation is returned and dests is
// left untouched.
func Reorder(dests []domain.Destination, ids []uuid.UUID) ([]domain.Destination, error) {
	if len(ids) != len(dests) {
		return nil, fmt.Errorf("%w: destinationIds must list all %d destinations exactly once, got %d",
			domain.ErrValidation, len(dests), len(ids))
	}

	byID := make(map[uuid.UUID]domain.Destination, len(dests))
	for _, d := range dests {
		byID[d.ID] = d
	}

	out := make([]domain.Destination, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for i, id := range ids {
		d, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: destination %s does not belong to this trip", domain.ErrValidation, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: destination %s listed more than once", domain.ErrValidation, id)
		}
		seen[id] = true
		d.Order = i
		out = append(out, d)
	}
	return out, nil
}

// WithinTrip reports the first destination that no longer fits inside the
// given trip bounds, if any. Used when the trip's own dates change.
func WithinTrip(trip domain.Trip) error {
	for _, d := range trip.Destinations {
		if !d.Stay().Within(trip.Span()) {
			return fmt.Errorf("%w: destination %s, %s would fall outside the trip dates",
				domain.ErrOutOfBounds, d.City, d.Country)
		}
	}
	return nil
}
