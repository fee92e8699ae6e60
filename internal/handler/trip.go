package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Name          string                `json:"name"`
	StartDate     openapi_types.Date    `json:"startDate"`
	EndDate       openapi_types.Date    `json:"endDate"`
	Collaborators []CollaboratorPayload `json:"collaborators,omitempty"`
	Budget        *BudgetRequest        `json:"budget,omitempty"`
}

// UpdateTripRequest is the body of PUT /trips/{tripId}. All fields are optional.
type UpdateTripRequest struct {
	Name      *string             `json:"name,omitempty"`
	StartDate *openapi_types.Date `json:"startDate,omitempty"`
	EndDate   *openapi_types.Date `json:"endDate,omitempty"`
}

// CollaboratorPayload grants a user a role on a trip.
type CollaboratorPayload struct {
	UserID openapi_types.UUID `json:"userId"`
	Role   string             `json:"role"`
}

// Trip is the API representation of a trip.
type Trip struct {
	ID            openapi_types.UUID    `json:"id"`
	OwnerID       openapi_types.UUID    `json:"ownerId"`
	Name          string                `json:"name"`
	StartDate     openapi_types.Date    `json:"startDate"`
	EndDate       openapi_types.Date    `json:"endDate"`
	DurationDays  int                   `json:"durationDays"`
	Destinations  []Destination         `json:"destinations"`
	Collaborators []CollaboratorPayload `json:"collaborators"`
	Budget        BudgetSettings        `json:"budget"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// BudgetSettings is the stored budget embedded in a trip response.
type BudgetSettings struct {
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	Breakdown Breakdown `json:"breakdown"`
}

// TripList is the paged response of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFromContext(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body CreateTripRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}

	created, err := s.trips.Create(r.Context(), caller, requestToTrip(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFromContext(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	params, err := pagination(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	trips, total, err := s.trips.ListPaged(r.Context(), caller, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), caller, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	var body UpdateTripRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), caller, tripID, service.TripPatch{
		Name:      body.Name,
		StartDate: dateOrNil(body.StartDate),
		EndDate:   dateOrNil(body.EndDate),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), caller, tripID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a domain.Trip.
func requestToTrip(body CreateTripRequest) domain.Trip {
	t := domain.Trip{
		Name:      body.Name,
		StartDate: body.StartDate.Time,
		EndDate:   body.EndDate.Time,
	}
	for _, c := range body.Collaborators {
		t.Collaborators = append(t.Collaborators, domain.Collaborator{UserID: c.UserID, Role: domain.Role(c.Role)})
	}
	if b := body.Budget; b != nil {
		if b.Total != nil {
			t.Budget.Total = *b.Total
		}
		if b.Currency != nil {
			t.Budget.Currency = *b.Currency
		}
		if bd := b.Breakdown; bd != nil {
			t.Budget.Breakdown = domain.Breakdown{
				Accommodation:  valueOr(bd.Accommodation),
				Transportation: valueOr(bd.Transportation),
				Food:           valueOr(bd.Food),
				Other:          valueOr(bd.Other),
			}
		}
	}
	return t
}

// tripToResponse converts a domain.Trip into its API representation.
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:            t.ID,
		OwnerID:       t.OwnerID,
		Name:          t.Name,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		DurationDays:  t.DurationDays(),
		Destinations:  make([]Destination, len(t.Destinations)),
		Collaborators: make([]CollaboratorPayload, len(t.Collaborators)),
		Budget: BudgetSettings{
			Total:     t.Budget.Total,
			Currency:  t.Budget.Currency,
			Breakdown: breakdownToResponse(t.Budget.Breakdown),
		},
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	for i, d := range t.Destinations {
		resp.Destinations[i] = destinationToResponse(d)
	}
	for i, c := range t.Collaborators {
		resp.Collaborators[i] = CollaboratorPayload{UserID: c.UserID, Role: string(c.Role)}
	}
	return resp
}

func valueOr(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
