package models

// DashboardRequest carries the main view controls.
// Start and End are inclusive calendar dates in YYYY-MM-DD form.
type DashboardRequest struct {
	Ticker  string `query:"ticker" form:"ticker" json:"ticker" validate:"required"`
	Start   string `query:"start" form:"start" json:"start" default:"2024-01-01" validate:"required,datetime=2006-01-02"`
	End     string `query:"end" form:"end" json:"end" default:"2024-12-31" validate:"required,datetime=2006-01-02"`
	Column  string `query:"column" form:"column" json:"column" default:"close" validate:"required,oneof=open high low close adj_close volume"`
	Horizon int    `query:"horizon" form:"horizon" json:"horizon" validate:"gte=1,lte=90"`
}

// Failure is the single user-visible error of a pipeline pass.
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// DashboardResult is everything one pipeline pass produced. Stages after a
// failed one are left nil. LastObserved is nil when the selected column was not fetched.
type DashboardResult struct {
	Request        DashboardRequest `json:"request"`
	Columns        []string         `json:"columns,omitempty"`
	Series         *PriceSeries     `json:"series,omitempty"`
	Forecast       *ForecastSeries  `json:"forecast,omitempty"`
	LastObserved   *float64         `json:"last_observed,omitempty"`
	Recommendation *Recommendation  `json:"recommendation,omitempty"`
	Failure        *Failure         `json:"error,omitempty"`
}
