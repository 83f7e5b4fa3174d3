package service

import "StockPulse/internal/domain/models"

// Forecaster fits a model to one column of series and projects horizon steps ahead.
type Forecaster interface {
	Forecast(series *models.PriceSeries, column string, horizon int) (*models.ForecastSeries, error)
}
