package models

import "time"

// Price columns selectable for forecasting.
const (
	ColumnOpen     = "open"
	ColumnHigh     = "high"
	ColumnLow      = "low"
	ColumnClose    = "close"
	ColumnAdjClose = "adj_close"
	ColumnVolume   = "volume"
)

var columnLabels = map[string]string{
	ColumnOpen:     "Open",
	ColumnHigh:     "High",
	ColumnLow:      "Low",
	ColumnClose:    "Close",
	ColumnAdjClose: "Adj Close",
	ColumnVolume:   "Volume",
}

// ColumnLabel returns the display name of a column.
func ColumnLabel(col string) string {
	if l, ok := columnLabels[col]; ok {
		return l
	}
	return col
}

// Bar is one daily OHLCV row. Date is the exchange calendar date at midnight UTC.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close,omitempty"`
	Volume   float64   `json:"volume"`
}

// PriceSeries holds daily bars for one ticker in ascending date order.
type PriceSeries struct {
	Ticker      string `json:"ticker"`
	Bars        []Bar  `json:"bars"`
	HasAdjClose bool   `json:"has_adj_close"`
}

// Empty reports whether the series has no bars.
func (s *PriceSeries) Empty() bool { return s == nil || len(s.Bars) == 0 }

// Columns lists the numeric columns present in the series, date excluded.
func (s *PriceSeries) Columns() []string {
	cols := []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose}
	if s != nil && s.HasAdjClose {
		cols = append(cols, ColumnAdjClose)
	}
	return append(cols, ColumnVolume)
}

// HasColumn reports whether col is one of Columns().
func (s *PriceSeries) HasColumn(col string) bool {
	for _, c := range s.Columns() {
		if c == col {
			return true
		}
	}
	return false
}

// Values extracts one column in date order.
func (s *PriceSeries) Values(col string) ([]float64, bool) {
	if s == nil || !s.HasColumn(col) {
		return nil, false
	}
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.value(col)
	}
	return out, true
}

// LastDate returns the date of the final bar.
func (s *PriceSeries) LastDate() time.Time {
	if s.Empty() {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].Date
}

func (b Bar) value(col string) float64 {
	switch col {
	case ColumnOpen:
		return b.Open
	case ColumnHigh:
		return b.High
	case ColumnLow:
		return b.Low
	case ColumnClose:
		return b.Close
	case ColumnAdjClose:
		return b.AdjClose
	case ColumnVolume:
		return b.Volume
	}
	return 0
}
