package web

import (
	"context"
	"net/http"
	"strings"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

var allColumns = []string{
	models.ColumnOpen,
	models.ColumnHigh,
	models.ColumnLow,
	models.ColumnClose,
	models.ColumnAdjClose,
	models.ColumnVolume,
}

// DashboardPage renders the main view. Failures are shown as a banner, so the
// page itself answers 200 unless the input could not be validated.
func (h *Handler) DashboardPage(c echo.Context) error {
	req := h.dashboard.NewRequest()
	view := dashboardView{
		Session:    sessionFrom(c),
		Tickers:    h.dashboard.Tickers(),
		Columns:    allColumns,
		MinHorizon: models.MinHorizon,
		MaxHorizon: models.MaxHorizon,
	}

	if verrs := xhttp.ReadAndValidateRequest(c, &req); verrs != nil {
		view.Request = req
		view.Failure = validationFailure(verrs)
		return c.Render(http.StatusBadRequest, "dashboard.html", view)
	}

	res := h.dashboard.Run(c.Request().Context(), req)
	view.Request = res.Request
	view.Result = res
	view.Failure = res.Failure
	if len(res.Columns) > 0 {
		view.Columns = res.Columns
	}

	if res.Series != nil {
		chart, err := historyChart(res.Series)
		if err != nil {
			h.logger.Error("history chart failed", xlogger.Error(err))
		}
		view.HistoryChart = chart
	}
	if res.Forecast != nil {
		chart, err := forecastChart(res.Series, res.Forecast)
		if err != nil {
			h.logger.Error("forecast chart failed", xlogger.Error(err))
		}
		view.ForecastChart = chart
	}

	return c.Render(http.StatusOK, "dashboard.html", view)
}

// DashboardAPI returns the pipeline result in the standard envelope. A
// failed stage sets the envelope status; the partial result is still sent.
func (h *Handler) DashboardAPI(c echo.Context) error {
	req := h.dashboard.NewRequest()
	if verrs := xhttp.ReadAndValidateRequest(c, &req); verrs != nil {
		return xhttp.BadRequestResponse(c, verrs)
	}

	res := h.dashboard.Run(c.Request().Context(), req)
	if res.Failure != nil {
		return xhttp.DataResponse(c, failureError(res.Failure).Status, res)
	}
	return xhttp.SuccessResponse(c, res)
}

// runMessage handles one websocket request.
func (h *Handler) runMessage(ctx context.Context, req models.DashboardRequest) *models.DashboardResult {
	if verrs := xhttp.ValidateRequest(ctx, &req); verrs != nil {
		return &models.DashboardResult{Request: req, Failure: validationFailure(verrs)}
	}
	return h.dashboard.Run(ctx, req)
}

func validationFailure(verrs []xhttp.ValidationError) *models.Failure {
	return &models.Failure{
		Kind:    models.KindValidation,
		Message: "Invalid input: " + strings.Join(xhttp.Messages(verrs), "; "),
	}
}

// failureError maps a pipeline failure to its HTTP error.
func failureError(f *models.Failure) *xhttp.AppError {
	switch f.Kind {
	case models.KindValidation:
		return xhttp.BadRequestError(f.Message)
	case models.KindFetch:
		return xhttp.FetchError(f.Message)
	case models.KindFit:
		return xhttp.FitError(f.Message)
	case models.KindConfiguration:
		return xhttp.ConfigurationError(f.Message)
	default:
		return xhttp.InternalError(f.Message)
	}
}
