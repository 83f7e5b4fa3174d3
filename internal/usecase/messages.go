package usecase

import (
	"errors"
	"fmt"

	"StockPulse/internal/domain/models"
)

const (
	MsgInvalidCredentials = "Incorrect username or password. Please try again."
	MsgRateLimited        = "Too many login attempts. Please wait and try again."
	MsgConfiguration      = "Login is unavailable: the credential store could not be read."
	MsgNoData             = "No data fetched. Please check the date range or ticker symbol."
)

// FailureOf converts a stage error into the single message shown to the user.
func FailureOf(err error) *models.Failure {
	if err == nil {
		return nil
	}
	kind := models.KindOf(err)
	var msg string
	switch kind {
	case models.KindAuthentication:
		msg = MsgInvalidCredentials
	case models.KindRateLimited:
		msg = MsgRateLimited
	case models.KindConfiguration:
		msg = MsgConfiguration
	case models.KindFetch:
		if errors.Is(err, models.ErrNoData) {
			msg = MsgNoData
		} else {
			msg = fmt.Sprintf("Error fetching data: %v", unwrapStage(err))
		}
	case models.KindFit:
		msg = fmt.Sprintf("Forecasting failed: %v", unwrapStage(err))
	case models.KindValidation:
		msg = fmt.Sprintf("Invalid input: %v", unwrapStage(err))
	default:
		msg = err.Error()
	}
	return &models.Failure{Kind: kind, Message: msg}
}

func unwrapStage(err error) error {
	var se *models.StageError
	if errors.As(err, &se) {
		return se.Err
	}
	return err
}
