package repo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// The JSONB columns on trips hold these document shapes. Dates are stored as
// YYYY-MM-DD strings so the documents stay readable from psql.

type destinationDoc struct {
	ID            uuid.UUID `json:"id"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	ArrivalDate   string    `json:"arrivalDate"`
	DepartureDate string    `json:"departureDate"`
	Order         int       `json:"order"`
	Budget        *float64  `json:"budget,omitempty"`
}

type collaboratorDoc struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

type breakdownDoc struct {
	Accommodation  float64 `json:"accommodation"`
	Transportation float64 `json:"transportation"`
	Activities     float64 `json:"activities"`
	Food           float64 `json:"food"`
	Other          float64 `json:"other"`
}

func encodeDestinations(dests []domain.Destination) ([]byte, error) {
	docs := make([]destinationDoc, len(dests))
	for i, d := range dests {
		docs[i] = destinationDoc{
			ID:            d.ID,
			City:          d.City,
			Country:       d.Country,
			ArrivalDate:   d.ArrivalDate.Format(domain.DateLayout),
			DepartureDate: d.DepartureDate.Format(domain.DateLayout),
			Order:         d.Order,
			Budget:        d.Budget,
		}
	}
	return json.Marshal(docs)
}

func decodeDestinations(raw []byte) ([]domain.Destination, error) {
	var docs []destinationDoc
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, fmt.Errorf("decode destinations: %w", err)
		}
	}
	out := make([]domain.Destination, len(docs))
	for i, d := range docs {
		arrival, err := parseDocDate(d.ArrivalDate)
		if err != nil {
			return nil, err
		}
		departure, err := parseDocDate(d.DepartureDate)
		if err != nil {
			return nil, err
		}
		out[i] = domain.Destination{
			ID:            d.ID,
			City:          d.City,
			Country:       d.Country,
			ArrivalDate:   arrival,
			DepartureDate: departure,
			Order:         d.Order,
			Budget:        d.Budget,
		}
	}
	return out, nil
}

func encodeCollaborators(cols []domain.Collaborator) ([]byte, error) {
	docs := make([]collaboratorDoc, len(cols))
	for i, c := range cols {
		docs[i] = collaboratorDoc{UserID: c.UserID, Role: string(c.Role)}
	}
	return json.Marshal(docs)
}

func decodeCollaborators(raw []byte) ([]domain.Collaborator, error) {
	var docs []collaboratorDoc
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, fmt.Errorf("decode collaborators: %w", err)
		}
	}
	out := make([]domain.Collaborator, len(docs))
	for i, c := range docs {
		out[i] = domain.Collaborator{UserID: c.UserID, Role: domain.Role(c.Role)}
	}
	return out, nil
}

func encodeBreakdown(b domain.Breakdown) ([]byte, error) {
	return json.Marshal(breakdownDoc(b))
}

func decodeBreakdown(raw []byte) (domain.Breakdown, error) {
	var doc breakdownDoc
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return domain.Breakdown{}, fmt.Errorf("decode breakdown: %w", err)
		}
	}
	return domain.Breakdown(doc), nil
}

func parseDocDate(s string) (time.Time, error) {
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode date %q: %w", s, err)
	}
	return t, nil
}
