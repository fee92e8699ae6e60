package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// BudgetRequest is the body of PUT /budget/{tripId}. Every field is optional.
type BudgetRequest struct {
	Total     *float64               `json:"total,omitempty"`
	Currency  *string                `json:"currency,omitempty"`
	Breakdown *BreakdownPatchRequest `json:"breakdown,omitempty"`
}

// BreakdownPatchRequest lists the lump categories an owner may set.
// An "activities" key in the body has no field here and is ignored.
type BreakdownPatchRequest struct {
	Accommodation  *float64 `json:"accommodation,omitempty"`
	Transportation *float64 `json:"transportation,omitempty"`
	Food           *float64 `json:"food,omitempty"`
	Other          *float64 `json:"other,omitempty"`
}

// Breakdown is the per-category split of a budget.
type Breakdown struct {
	Accommodation  float64 `json:"accommodation"`
	Transportation float64 `json:"transportation"`
	Activities     float64 `json:"activities"`
	Food           float64 `json:"food"`
	Other          float64 `json:"other"`
}

// DayBreakdown is the spend attributed to one day.
type DayBreakdown struct {
	Breakdown
	Total float64 `json:"total"`
}

// BudgetResponse is the reconciled budget of a trip. DailyBreakdown is keyed
// by date in YYYY-MM-DD form.
type BudgetResponse struct {
	Total          float64                 `json:"total"`
	Currency       string                  `json:"currency"`
	Breakdown      Breakdown               `json:"breakdown"`
	DailyBreakdown map[string]DayBreakdown `json:"dailyBreakdown"`
}

// Advisory is one forecast message.
type Advisory struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ForecastResponse is the response of GET /budget/{tripId}/forecast.
type ForecastResponse struct {
	Total               float64    `json:"total"`
	Currency            string     `json:"currency"`
	CurrentSpending     float64    `json:"currentSpending"`
	RemainingBudget     float64    `json:"remainingBudget"`
	SpendingPercentage  float64    `json:"spendingPercentage"`
	ExpensiveActivities int        `json:"expensiveActivities"`
	FreeDays            int        `json:"freeDays"`
	Advisories          []Advisory `json:"advisories"`
}

// GetBudget handles GET /budget/{tripId}.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	summary, err := s.budget.GetBreakdown(r.Context(), caller, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetToResponse(summary))
}

// UpdateBudget handles PUT /budget/{tripId}.
func (s *Server) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	var body BudgetRequest
	if err := decodeBody(r, &body); err != nil {
		s.bodyError(w, r, err)
		return
	}

	patch := service.BudgetPatch{Total: body.Total, Currency: body.Currency}
	if bd := body.Breakdown; bd != nil {
		patch.Accommodation = bd.Accommodation
		patch.Transportation = bd.Transportation
		patch.Food = bd.Food
		patch.Other = bd.Other
	}

	summary, err := s.budget.UpdateBudget(r.Context(), caller, tripID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetToResponse(summary))
}

// GetForecast handles GET /budget/{tripId}/forecast.
func (s *Server) GetForecast(w http.ResponseWriter, r *http.Request) {
	caller, tripID, ok := s.request(w, r)
	if !ok {
		return
	}
	f, err := s.budget.Forecast(r.Context(), caller, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := ForecastResponse{
		Total:               f.Total,
		Currency:            f.Currency,
		CurrentSpending:     f.CurrentSpending,
		RemainingBudget:     f.RemainingBudget,
		SpendingPercentage:  f.SpendingPercentage,
		ExpensiveActivities: f.ExpensiveActivities,
		FreeDays:            f.FreeDays,
		Advisories:          make([]Advisory, len(f.Advisories)),
	}
	for i, a := range f.Advisories {
		resp.Advisories[i] = Advisory{Level: string(a.Level), Message: a.Message}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- mapping helpers --------------------------------------------------------

func breakdownToResponse(b domain.Breakdown) Breakdown {
	return Breakdown{
		Accommodation:  b.Accommodation,
		Transportation: b.Transportation,
		Activities:     b.Activities,
		Food:           b.Food,
		Other:          b.Other,
	}
}

func budgetToResponse(s domain.BudgetSummary) BudgetResponse {
	resp := BudgetResponse{
		Total:          s.Total,
		Currency:       s.Currency,
		Breakdown:      breakdownToResponse(s.Breakdown),
		DailyBreakdown: make(map[string]DayBreakdown, len(s.Daily)),
	}
	for _, d := range s.Daily {
		resp.DailyBreakdown[d.Date.Format(domain.DateLayout)] = DayBreakdown{
			Breakdown: Breakdown{
				Accommodation:  d.Accommodation,
				Transportation: d.Transportation,
				Activities:     d.Activities,
				Food:           d.Food,
				Other:          d.Other,
			},
			Total: d.Total,
		}
	}
	return resp
}
