package models

import "time"

// Forecast horizon bounds, in steps of the forecast calendar.
const (
	MinHorizon = 1
	MaxHorizon = 90
)

type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ForecastSeries is a fresh h-step forecast of one column.
type ForecastSeries struct {
	Ticker string          `json:"ticker"`
	Column string          `json:"column"`
	Order  [3]int          `json:"order"`
	Params []float64       `json:"params"`
	Sigma2 float64         `json:"sigma2"`
	Points []ForecastPoint `json:"points"`
}

// Last returns the final forecast value.
func (f *ForecastSeries) Last() (float64, bool) {
	if f == nil || len(f.Points) == 0 {
		return 0, false
	}
	return f.Points[len(f.Points)-1].Value, true
}

// Recommendation is the binary trading signal.
type Recommendation string

const (
	Buy  Recommendation = "Buy"
	Sell Recommendation = "Sell"
)
