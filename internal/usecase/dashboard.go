package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// DashboardDefaults prefills the controls of a fresh main view.
type DashboardDefaults struct {
	Tickers []string
	Start   string
	End     string
	Column  string
	Horizon int
}

// DashboardUseCase runs fetch -> forecast -> recommend once per request.
type DashboardUseCase struct {
	market     domrepo.MarketData
	forecaster domsvc.Forecaster
	metrics    domrepo.Metrics
	log        *logger.Logger
	defaults   DashboardDefaults
}

func NewDashboardUseCase(
	market domrepo.MarketData,
	forecaster domsvc.Forecaster,
	metrics domrepo.Metrics,
	log *logger.Logger,
	defaults DashboardDefaults,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		market:     market,
		forecaster: forecaster,
		metrics:    metrics,
		log:        log,
		defaults:   defaults,
	}
}

// Tickers returns the allow-list shown in the ticker select.
func (uc *DashboardUseCase) Tickers() []string {
	return uc.defaults.Tickers
}

// NewRequest returns the request for a first visit.
func (uc *DashboardUseCase) NewRequest() models.DashboardRequest {
	req := models.DashboardRequest{
		Start:   uc.defaults.Start,
		End:     uc.defaults.End,
		Column:  uc.defaults.Column,
		Horizon: uc.defaults.Horizon,
	}
	if len(uc.defaults.Tickers) > 0 {
		req.Ticker = uc.defaults.Tickers[0]
	}
	return req
}

// Run executes one pipeline pass. It never returns an error: the first
// failing stage is reported on the result's Failure and later stages are
// skipped.
func (uc *DashboardUseCase) Run(ctx context.Context, req models.DashboardRequest) *models.DashboardResult {
	res := &models.DashboardResult{Request: req}

	start, endExclusive, err := uc.check(req)
	if err != nil {
		return uc.fail(res, models.NewStageError(models.KindValidation, err))
	}

	began := time.Now()
	series, err := uc.market.Fetch(ctx, req.Ticker, start, endExclusive)
	uc.metrics.RecordLatency("fetch", time.Since(began).Seconds())
	if err == nil && series.Empty() {
		err = models.ErrNoData
	}
	if err != nil {
		uc.log.Warn("fetch failed",
			logger.String("provider", uc.market.Name()),
			logger.String("ticker", req.Ticker),
			logger.String("start", req.Start),
			logger.String("end", req.End),
			logger.Error(err),
		)
		return uc.fail(res, models.NewStageError(models.KindFetch, err))
	}
	res.Series = series
	res.Columns = series.Columns()

	var observed float64
	if values, ok := series.Values(req.Column); ok {
		observed = values[len(values)-1]
		res.LastObserved = &observed
		uc.metrics.RecordLastPrice(req.Ticker, observed)
	}

	began = time.Now()
	fc, err := uc.forecaster.Forecast(series, req.Column, req.Horizon)
	uc.metrics.RecordLatency("forecast", time.Since(began).Seconds())
	if err != nil {
		uc.log.Warn("forecast failed",
			logger.String("ticker", req.Ticker),
			logger.String("column", req.Column),
			logger.Int("observations", len(series.Bars)),
			logger.Error(err),
		)
		return uc.fail(res, models.NewStageError(models.KindFit, err))
	}
	res.Forecast = fc

	last, _ := fc.Last()
	rec := Recommend(observed, last)
	res.Recommendation = &rec
	uc.metrics.RecordRecommendation(string(rec))

	uc.log.Debug("dashboard computed",
		logger.String("ticker", req.Ticker),
		logger.String("column", req.Column),
		logger.Int("horizon", req.Horizon),
		logger.Int("bars", len(series.Bars)),
		logger.String("recommendation", string(rec)),
	)
	return res
}

// check validates what struct tags cannot: the ticker allow-list and the
// date order. The returned end is exclusive.
func (uc *DashboardUseCase) check(req models.DashboardRequest) (time.Time, time.Time, error) {
	if req.Ticker == "" {
		return time.Time{}, time.Time{}, errors.New("ticker is required")
	}
	if len(uc.defaults.Tickers) > 0 && !util.ContainsString(uc.defaults.Tickers, req.Ticker) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", models.ErrUnknownTicker, req.Ticker)
	}
	if req.Horizon < models.MinHorizon || req.Horizon > models.MaxHorizon {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d not in [%d, %d]",
			models.ErrInvalidHorizon, req.Horizon, models.MinHorizon, models.MaxHorizon)
	}
	start, ok := util.ParseDate(req.Start)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", req.Start)
	}
	end, ok := util.ParseDate(req.End)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", req.End)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, models.ErrInvalidRange
	}
	return start, end.AddDate(0, 0, 1), nil
}

func (uc *DashboardUseCase) fail(res *models.DashboardResult, err error) *models.DashboardResult {
	uc.metrics.RecordError(string(models.KindOf(err)))
	res.Failure = FailureOf(err)
	return res
}
