package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// DestinationRequest is the body of POST and PUT on destinations.
// POST requires city, country, arrivalDate and departureDate; on PUT every
// field is optional and missing ones keep their current value.
type DestinationRequest struct {
	City          *string             `json:"city,omitempty"`
	Country       *string             `json:"country,omitempty"`
	ArrivalDate   *openapi_types.Date `json:"arrivalDate,omitempty"`
	DepartureDate *openapi_types.Date `json:"departureDate,omitempty"`
	Budget        *float64            `json:"budget,omitempty"`
}

// ReorderRequest is the body of PUT /trips/{tripId}/destinations/reorder.
type ReorderRequest struct {
	DestinationIDs []openapi_types.UUID `json:"destinationIds"`
}

// Destination is the API representation of a stay.
type Destination struct {
	ID            openapi_types.UUID `json:"id"`
	City          string             `json:"city"`
	Country       string             `json:"country"`
	ArrivalDate   openapi_types.Date `json:"arrivalDate"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	Order         int                `json:"order"`
	Budget        *float64           `json:"budget,omitempty"`
}

// DestinationList is the response of a reorder.
type DestinationList struct {
	Data []Destination `json:"data"`
}

// RemoveDestinationResponse reports how many activities the removal cascaded to.
type RemoveDestinationResponse struct {
	DeletedActivities int64 `json:"deletedActivities"`
}

// AddDestination handles POST /trips/{tripId}/destinations.
func (s *Server) AddDestination(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	var body DestinationRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}
	if body.ArrivalDate == nil || body.DepartureDate == nil {
		requestError(w, "arrivalDate and departureDate are required")
		return
	}

	d := domain.Destination{
		ArrivalDate:   body.ArrivalDate.Time,
		DepartureDate: body.DepartureDate.Time,
		Budget:        body.Budget,
	}
	if body.City != nil {
		d.City = *body.City
	}
	if body.Country != nil {
		d.Country = *body.Country
	}

	created, err := s.destinations.Add(r.Context(), caller, tripID, d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// UpdateDestination handles PUT /trips/{tripId}/destinations/{destinationId}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	destID, err := pathUUID(r, "destinationId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body DestinationRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}

	updated, err := s.destinations.Update(r.Context(), caller, tripID, destID, service.DestinationPatch{
		City:          body.City,
		Country:       body.Country,
		ArrivalDate:   dateOrNil(body.ArrivalDate),
		DepartureDate: dateOrNil(body.DepartureDate),
		Budget:        body.Budget,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

// RemoveDestination handles DELETE /trips/{tripId}/destinations/{destinationId}.
func (s *Server) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	destID, err := pathUUID(r, "destinationId")
	if err != nil {
		requestError(w, err.Error())
		return
	}

	n, err := s.destinations.Remove(r.Context(), caller, tripID, destID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RemoveDestinationResponse{DeletedActivities: n})
}

// ReorderDestinations handles PUT /trips/{tripId}/destinations/reorder.
func (s *Server) ReorderDestinations(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	var body ReorderRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}

	ordered, err := s.destinations.Reorder(r.Context(), caller, tripID, body.DestinationIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Destination, len(ordered))
	for i, d := range ordered {
		data[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, DestinationList{Data: data})
}

// destinationToResponse converts a domain.Destination into its API representation.
func destinationToResponse(d domain.Destination) Destination {
	return Destination{
		ID:            d.ID,
		City:          d.City,
		Country:       d.Country,
		ArrivalDate:   openapi_types.Date{Time: d.ArrivalDate},
		DepartureDate: openapi_types.Date{Time: d.DepartureDate},
		Order:         d.Order,
		Budget:        d.Budget,
	}
}
