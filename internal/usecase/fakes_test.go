package usecase

import (
	"context"
	"math"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
)

type fakeCreds struct {
	creds map[string]models.Credential
	err   error
}

func (f *fakeCreds) Lookup(_ context.Context, username string) (models.Credential, bool, error) {
	if f.err != nil {
		return models.Credential{}, false, f.err
	}
	c, ok := f.creds[username]
	return c, ok, nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	logins map[string]int
	errors map[string]int
	recs   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{logins: map[string]int{}, errors: map[string]int{}, recs: map[string]int{}}
}

func (m *fakeMetrics) RecordLogin(outcome string) {
	m.mu.Lock()
	m.logins[outcome]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordError(stage string) {
	m.mu.Lock()
	m.errors[stage]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordRecommendation(signal string) {
	m.mu.Lock()
	m.recs[signal]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordLatency(string, float64)   {}
func (m *fakeMetrics) RecordLastPrice(string, float64) {}

// fakeMarket serves a synthetic weekday series over the requested range.
type fakeMarket struct {
	series   *models.PriceSeries
	err      error
	calls    int
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeMarket) Name() string { return "fake" }

func (f *fakeMarket) Fetch(_ context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	f.calls++
	f.gotStart, f.gotEnd = start, end
	if f.err != nil || f.series != nil {
		return f.series, f.err
	}
	return weekdaySeries(ticker, start, end), nil
}

func weekdaySeries(ticker string, start, end time.Time) *models.PriceSeries {
	s := &models.PriceSeries{Ticker: ticker, HasAdjClose: true}
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		c := 185 + 4*math.Sin(float64(i)/4) + 0.15*float64(i) + 0.9*math.Cos(float64(i)*1.3)
		s.Bars = append(s.Bars, models.Bar{
			Date: d, Open: c - 0.4, High: c + 1.1, Low: c - 1.2, Close: c, AdjClose: c - 0.8,
			Volume: 5e7 + float64(i%5)*1e6,
		})
		i++
	}
	return s
}

type spyForecaster struct {
	calls int
	err   error
	value float64
}

func (f *spyForecaster) Forecast(series *models.PriceSeries, column string, horizon int) (*models.ForecastSeries, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	points := make([]models.ForecastPoint, horizon)
	for i := range points {
		points[i] = models.ForecastPoint{Date: series.LastDate().AddDate(0, 0, i+1), Value: f.value}
	}
	return &models.ForecastSeries{Ticker: series.Ticker, Column: column, Points: points}, nil
}
