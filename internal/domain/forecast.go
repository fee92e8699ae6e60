package domain

// AdvisoryLevel classifies a forecast message.
type AdvisoryLevel string

const (
	AdvisoryWarning AdvisoryLevel = "warning"
	AdvisoryDanger  AdvisoryLevel = "danger"
	AdvisoryInfo    AdvisoryLevel = "info"
	AdvisorySuccess AdvisoryLevel = "success"
)

// Advisory is one message produced by the forecast.
type Advisory struct {
	Level   AdvisoryLevel
	Message string
}

// Forecast summarises how a trip's spending compares to its budget.
type Forecast struct {
	Total               float64
	Currency            string
	CurrentSpending     float64
	RemainingBudget     float64
	SpendingPercentage  float64
	ExpensiveActivities int
	FreeDays            int
	Advisories          []Advisory
}
