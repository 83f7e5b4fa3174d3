package forecast

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/util"
)

// wavySeries returns n daily bars starting on start with a non-degenerate close.
func wavySeries(start time.Time, n int) *models.PriceSeries {
	bars := make([]models.Bar, n)
	for i := 0; i < n; i++ {
		c := 100 + 5*math.Sin(float64(i)/3) + 0.2*float64(i) + 0.7*math.Cos(float64(i)*1.7)
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1e6 + float64(i%7)*1e4,
		}
	}
	return &models.PriceSeries{Ticker: "AAPL", Bars: bars}
}

func TestForecastLengthAndDates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := wavySeries(start, 60)
	m := NewARIMA(util.CalendarDaily)

	for _, h := range []int{1, 10, 30, 90} {
		fc, err := m.Forecast(s, models.ColumnClose, h)
		if err != nil {
			t.Fatalf("horizon %d: %v", h, err)
		}
		if len(fc.Points) != h {
			t.Fatalf("horizon %d: got %d points", h, len(fc.Points))
		}
		prev := s.LastDate()
		for _, p := range fc.Points {
			if !p.Date.After(prev) {
				t.Fatalf("horizon %d: date %v not after %v", h, p.Date, prev)
			}
			if p.Date.Sub(prev) != 24*time.Hour {
				t.Fatalf("horizon %d: gap between %v and %v", h, prev, p.Date)
			}
			prev = p.Date
		}
		if fc.Order != [3]int{5, 1, 0} {
			t.Fatalf("unexpected order %v", fc.Order)
		}
	}
}

func TestForecastWeekdayCalendar(t *testing.T) {
	// Last bar lands on Friday 2024-03-01.
	start := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	s := wavySeries(start, 50)
	fc, err := NewARIMA(util.CalendarWeekdays).Forecast(s, models.ColumnClose, 5)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	for _, p := range fc.Points {
		if wd := p.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend date %v in weekday calendar", p.Date)
		}
	}
	if fc.Points[0].Date.Format(util.DateLayout) != "2024-03-04" {
		t.Fatalf("unexpected first date %v", fc.Points[0].Date)
	}
}

func TestForecastRejectsBadInput(t *testing.T) {
	m := NewARIMA("")
	s := wavySeries(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 40)

	if _, err := m.Forecast(&models.PriceSeries{}, models.ColumnClose, 10); !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := m.Forecast(s, models.ColumnClose, 0); !errors.Is(err, models.ErrInvalidHorizon) {
		t.Fatalf("expected ErrInvalidHorizon for 0, got %v", err)
	}
	if _, err := m.Forecast(s, models.ColumnClose, 91); !errors.Is(err, models.ErrInvalidHorizon) {
		t.Fatalf("expected ErrInvalidHorizon for 91, got %v", err)
	}
	if _, err := m.Forecast(s, models.ColumnAdjClose, 10); !errors.Is(err, models.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestForecastInsufficientData(t *testing.T) {
	s := wavySeries(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), MinObservations-1)
	if _, err := NewARIMA("").Forecast(s, models.ColumnClose, 5); !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestForecastConstantSeries(t *testing.T) {
	s := wavySeries(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 30)
	for i := range s.Bars {
		s.Bars[i].Close = 42
	}
	if _, err := NewARIMA("").Forecast(s, models.ColumnClose, 5); !errors.Is(err, models.ErrDegenerateSeries) {
		t.Fatalf("expected ErrDegenerateSeries, got %v", err)
	}
}

func TestForecastLinearTrend(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, 20)
	for i := range bars {
		bars[i] = models.Bar{Date: start.AddDate(0, 0, i), Close: 100 + 2*float64(i)}
	}
	fc, err := NewARIMA(util.CalendarDaily).Forecast(&models.PriceSeries{Ticker: "AAPL", Bars: bars}, models.ColumnClose, 5)
	if err != nil {
		t.Fatalf("linear series must forecast: %v", err)
	}
	for k, p := range fc.Points {
		if want := 138 + 2*float64(k+1); math.Abs(p.Value-want) > 1e-9 {
			t.Fatalf("step %d: got %v want %v", k, p.Value, want)
		}
	}
}

func TestFitARRecoversCoefficient(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	xs := make([]float64, 3000)
	for i := 1; i < len(xs); i++ {
		xs[i] = 0.6*xs[i-1] + rng.NormFloat64()
	}
	phi, sigma2, err := FitAR(xs, AROrder)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(phi[0]-0.6) > 0.08 {
		t.Fatalf("phi1 = %.3f, want about 0.6", phi[0])
	}
	for i := 1; i < len(phi); i++ {
		if math.Abs(phi[i]) > 0.1 {
			t.Fatalf("phi%d = %.3f, want about 0", i+1, phi[i])
		}
	}
	if math.Abs(sigma2-1) > 0.15 {
		t.Fatalf("sigma2 = %.3f, want about 1", sigma2)
	}
}

func TestDifferenceIntegrateRoundTrip(t *testing.T) {
	levels := []float64{10, 12, 11, 15, 14}
	d := Difference(levels)
	back := Integrate(levels[0], d)
	for i, v := range back {
		if v != levels[i+1] {
			t.Fatalf("index %d: got %v want %v", i, v, levels[i+1])
		}
	}
}

func TestForecastARRecursion(t *testing.T) {
	got := ForecastAR([]float64{1, 2}, []float64{0.5, 0}, 3)
	want := []float64{1, 0.5, 0.25}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("step %d: got %v want %v", i, got[i], want[i])
		}
	}
}
