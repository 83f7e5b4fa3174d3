package forecast

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
	"StockPulse/pkg/util"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Fixed model order and horizon bounds.
const (
	AROrder    = 5
	DiffOrder  = 1
	MAOrder    = 0
	MinHorizon = models.MinHorizon
	MaxHorizon = models.MaxHorizon
)

// MinObservations is the shortest level series that leaves more regression
// rows than AR coefficients after differencing.
const MinObservations = 2*AROrder + DiffOrder + 1

// ARIMA fits ARIMA(5,1,0) without a constant by conditional least squares.
type ARIMA struct {
	calendar string
}

func NewARIMA(calendar string) *ARIMA {
	if calendar == "" {
		calendar = util.CalendarDaily
	}
	return &ARIMA{calendar: calendar}
}

func (m *ARIMA) Forecast(series *models.PriceSeries, column string, horizon int) (*models.ForecastSeries, error) {
	if series.Empty() {
		return nil, models.ErrNoData
	}
	if horizon < MinHorizon || horizon > MaxHorizon {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", models.ErrInvalidHorizon, horizon, MinHorizon, MaxHorizon)
	}
	levels, ok := series.Values(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownColumn, column)
	}
	if len(levels) < MinObservations {
		return nil, fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientData, len(levels), MinObservations)
	}

	diffs := Difference(levels)
	phi, sigma2, err := fitDifferences(diffs)
	if err != nil {
		return nil, err
	}

	values := Integrate(levels[len(levels)-1], ForecastAR(diffs, phi, horizon))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite forecast", models.ErrFitFailed)
		}
	}

	dates := util.NextDates(series.LastDate(), horizon, m.calendar)
	points := make([]models.ForecastPoint, horizon)
	for i := range points {
		points[i] = models.ForecastPoint{Date: dates[i], Value: values[i]}
	}

	return &models.ForecastSeries{
		Ticker: series.Ticker,
		Column: column,
		Order:  [3]int{AROrder, DiffOrder, MAOrder},
		Params: phi,
		Sigma2: sigma2,
		Points: points,
	}, nil
}

// Difference returns first differences x_t - x_{t-1}.
func Difference(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

// Integrate undoes one round of differencing starting from level.
func Integrate(level float64, diffs []float64) []float64 {
	out := make([]float64, len(diffs))
	for i, d := range diffs {
		level += d
		out[i] = level
	}
	return out
}

// fitDifferences handles a constant nonzero step (a straight-line trend),
// which leaves the least-squares system singular. x_t = x_{t-1} fits it
// exactly and the forecast keeps the trend.
func fitDifferences(diffs []float64) ([]float64, float64, error) {
	if len(diffs) > 0 && diffs[0] != 0 && !math.IsInf(diffs[0], 0) && floats.Min(diffs) == floats.Max(diffs) {
		phi := make([]float64, AROrder)
		phi[0] = 1
		return phi, 0, nil
	}
	return FitAR(diffs, AROrder)
}

// FitAR estimates x_t = sum_i phi_i x_{t-i} + e_t by least squares over the
// rows t = p..n-1. It returns the coefficients and the residual variance.
func FitAR(xs []float64, p int) ([]float64, float64, error) {
	rows := len(xs) - p
	if p <= 0 || rows < p+1 {
		return nil, 0, fmt.Errorf("%w: %d differenced points for AR(%d)", models.ErrInsufficientData, len(xs), p)
	}
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, 0, models.ErrDegenerateSeries
		}
	}
	if stat.Variance(xs, nil) == 0 {
		return nil, 0, models.ErrDegenerateSeries
	}

	design := mat.NewDense(rows, p, nil)
	target := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		t := r + p
		for i := 0; i < p; i++ {
			design.Set(r, i, xs[t-1-i])
		}
		target.SetVec(r, xs[t])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", models.ErrFitFailed, err)
	}
	phi := make([]float64, p)
	for i := range phi {
		phi[i] = beta.AtVec(i)
	}
	if floats.HasNaN(phi) {
		return nil, 0, fmt.Errorf("%w: NaN coefficients", models.ErrFitFailed)
	}

	var fitted mat.VecDense
	fitted.MulVec(design, &beta)
	ss := 0.0
	for r := 0; r < rows; r++ {
		e := target.AtVec(r) - fitted.AtVec(r)
		ss += e * e
	}

	return phi, ss / float64(rows), nil
}

// ForecastAR runs the AR recursion h steps past the end of xs.
func ForecastAR(xs, phi []float64, h int) []float64 {
	p := len(phi)
	hist := make([]float64, len(xs), len(xs)+h)
	copy(hist, xs)
	out := make([]float64, 0, h)
	lags := make([]float64, p)
	for k := 0; k < h; k++ {
		n := len(hist)
		for i := 0; i < p; i++ {
			if n-1-i >= 0 {
				lags[i] = hist[n-1-i]
			} else {
				lags[i] = 0
			}
		}
		next := floats.Dot(phi, lags)
		hist = append(hist, next)
		out = append(out, next)
	}
	return out
}

var _ domsvc.Forecaster = (*ARIMA)(nil)
