package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// Money is an amount in the trip's currency.
type Money struct {
	Amount float64 `json:"amount"`
}

// Place is the city/country snapshot an activity carries.
type Place struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// CreateActivityRequest is the body of POST /trips/{tripId}/activities.
// When destinationId is set the place snapshot is copied from that destination
// and any destination object in the body is ignored.
type CreateActivityRequest struct {
	Title         string              `json:"title"`
	Notes         string              `json:"notes,omitempty"`
	Date          *openapi_types.Date `json:"date"`
	StartTime     *domain.ClockTime   `json:"startTime"`
	EndTime       *domain.ClockTime   `json:"endTime"`
	Cost          *Money              `json:"cost,omitempty"`
	DestinationID *openapi_types.UUID `json:"destinationId,omitempty"`
	Destination   *Place              `json:"destination,omitempty"`
}

// UpdateActivityRequest is the body of PATCH /trips/{tripId}/activities/{activityId}.
// A duration without an endTime moves the end to startTime + duration.
type UpdateActivityRequest struct {
	Title     *string             `json:"title,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	Date      *openapi_types.Date `json:"date,omitempty"`
	StartTime *domain.ClockTime   `json:"startTime,omitempty"`
	EndTime   *domain.ClockTime   `json:"endTime,omitempty"`
	Duration  *int                `json:"duration,omitempty"`
	Cost      *Money              `json:"cost,omitempty"`
}

// MoveActivityRequest is the body of POST /trips/{tripId}/activities/move.
type MoveActivityRequest struct {
	ActivityID openapi_types.UUID `json:"activityId"`
	TargetDate openapi_types.Date `json:"targetDate"`
}

// MoveActivityResponse is the slot the activity was placed in.
type MoveActivityResponse struct {
	ActivityID openapi_types.UUID `json:"activityId"`
	Date       openapi_types.Date `json:"date"`
	StartTime  domain.ClockTime   `json:"startTime"`
	EndTime    domain.ClockTime   `json:"endTime"`
}

// Activity is the API representation of an activity.
type Activity struct {
	ID            openapi_types.UUID  `json:"id"`
	TripID        openapi_types.UUID  `json:"tripId"`
	DestinationID *openapi_types.UUID `json:"destinationId,omitempty"`
	Destination   Place               `json:"destination"`
	Title         string              `json:"title"`
	Notes         string              `json:"notes,omitempty"`
	Date          openapi_types.Date  `json:"date"`
	StartTime     domain.ClockTime    `json:"startTime"`
	EndTime       domain.ClockTime    `json:"endTime"`
	Duration      int                 `json:"duration"`
	Cost          Money               `json:"cost"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ActivityList is the paged response of GET /trips/{tripId}/activities.
type ActivityList struct {
	Data       []Activity `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateActivity handles POST /trips/{tripId}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	var body CreateActivityRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}
	if body.Date == nil || body.StartTime == nil || body.EndTime == nil {
		requestError(w, "date, startTime and endTime are required")
		return
	}

	a := domain.Activity{
		TripID:        tripID,
		DestinationID: body.DestinationID,
		Title:         body.Title,
		Notes:         body.Notes,
		Date:          body.Date.Time,
		StartTime:     *body.StartTime,
		EndTime:       *body.EndTime,
	}
	if body.Cost != nil {
		a.Cost = body.Cost.Amount
	}
	if body.Destination != nil {
		a.City, a.Country = body.Destination.City, body.Destination.Country
	}

	created, err := s.activities.Create(r.Context(), caller, a)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

// ListActivities handles GET /trips/{tripId}/activities.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	params, err := pagination(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	acts, total, err := s.activities.ListPaged(r.Context(), caller, tripID, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Activity, len(acts))
	for i, a := range acts {
		data[i] = activityToResponse(a)
	}
	writeJSON(w, http.StatusOK, ActivityList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// UpdateActivity handles PATCH /trips/{tripId}/activities/{activityId}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	activityID, err := pathUUID(r, "activityId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body UpdateActivityRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}

	patch := service.ActivityPatch{
		Title:           body.Title,
		Notes:           body.Notes,
		Date:            dateOrNil(body.Date),
		StartTime:       body.StartTime,
		EndTime:         body.EndTime,
		DurationMinutes: body.Duration,
	}
	if body.Cost != nil {
		patch.Cost = &body.Cost.Amount
	}

	updated, err := s.activities.Update(r.Context(), caller, tripID, activityID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

// MoveActivity handles POST /trips/{tripId}/activities/move, the drag and drop
// rescheduling call. The response carries the recomputed slot.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	var body MoveActivityRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}
	if body.TargetDate.Time.IsZero() {
		requestError(w, "targetDate is required")
		return
	}

	moved, err := s.activities.Move(r.Context(), caller, tripID, body.ActivityID, body.TargetDate.Time)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MoveActivityResponse{
		ActivityID: moved.ID,
		Date:       openapi_types.Date{Time: moved.Date},
		StartTime:  moved.StartTime,
		EndTime:    moved.EndTime,
	})
}

// DeleteActivity handles DELETE /trips/{tripId}/activities/{activityId}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	activityID, err := pathUUID(r, "activityId")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if err := s.activities.Delete(r.Context(), caller, tripID, activityID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activityToResponse converts a domain.Activity into its API representation.
func activityToResponse(a domain.Activity) Activity {
	return Activity{
		ID:            a.ID,
		TripID:        a.TripID,
		DestinationID: a.DestinationID,
		Destination:   Place{City: a.City, Country: a.Country},
		Title:         a.Title,
		Notes:         a.Notes,
		Date:          openapi_types.Date{Time: a.Date},
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Duration:      a.DurationMinutes,
		Cost:          Money{Amount: a.Cost},
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
