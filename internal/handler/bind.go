package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Pagination is the paging metadata attached to list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// pathUUID binds the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}

// pagination binds the optional ?page= and ?limit= query parameters.
func pagination(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("invalid format for parameter page: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return domain.NewPaginationParams(page, limit), nil
}

// decodeBody decodes the JSON request body into dst.
// An empty body is reported as "request body is required".
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errors.New("request body is required")
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("malformed request body: %w", err)
}

// request resolves the caller and the {tripId} path parameter shared by almost
// every endpoint. It writes the error response itself and reports ok=false.
func (s *Server) request(w http.ResponseWriter, r *http.Request) (domain.Caller, openapi_types.UUID, bool) {
	caller, err := auth.CallerFromContext(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return domain.Caller{}, openapi_types.UUID{}, false
	}
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, err.Error())
		return domain.Caller{}, openapi_types.UUID{}, false
	}
	return caller, tripID, true
}

// bodyError writes the response for a body decodeBody rejected.
func (s *Server) bodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, err)
		return
	}
	requestError(w, err.Error())
}

// dateOrNil converts an optional API date to an optional time.
func dateOrNil(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
