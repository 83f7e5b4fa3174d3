package usecase

import "StockPulse/internal/domain/models"

// Recommend returns Buy when the last forecast value is strictly above the
// last observed one, Sell otherwise.
func Recommend(lastObserved, lastForecast float64) models.Recommendation {
	if lastForecast > lastObserved {
		return models.Buy
	}
	return models.Sell
}
