package web

import (
	"bytes"
	"fmt"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/util"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missing is the echarts placeholder for a gap in a line.
const missing = "-"

const chartHeight = "420px"

// historyChart plots every numeric column of series. Volume gets its own axis.
func historyChart(series *models.PriceSeries) (string, error) {
	line := newLine(fmt.Sprintf("%s price history", series.Ticker))
	line.ExtendYAxis(opts.YAxis{Name: models.ColumnLabel(models.ColumnVolume)})

	dates := make([]string, len(series.Bars))
	for i, b := range series.Bars {
		dates[i] = b.Date.Format(util.DateLayout)
	}
	line.SetXAxis(dates)

	for _, col := range series.Columns() {
		values, _ := series.Values(col)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		if col == models.ColumnVolume {
			line.AddSeries(models.ColumnLabel(col), data,
				charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
			continue
		}
		line.AddSeries(models.ColumnLabel(col), data)
	}
	return renderChart(line)
}

// forecastChart plots the selected column followed by the forecast. The
// forecast line starts at the last observation so the two lines join.
func forecastChart(series *models.PriceSeries, fc *models.ForecastSeries) (string, error) {
	values, ok := series.Values(fc.Column)
	if !ok {
		return "", fmt.Errorf("column %q not in series", fc.Column)
	}
	label := models.ColumnLabel(fc.Column)
	line := newLine(fmt.Sprintf("%s %s forecast, ARIMA(%d,%d,%d)",
		series.Ticker, label, fc.Order[0], fc.Order[1], fc.Order[2]))

	n, h := len(values), len(fc.Points)
	dates := make([]string, 0, n+h)
	observed := make([]opts.LineData, 0, n+h)
	projected := make([]opts.LineData, 0, n+h)

	for i, b := range series.Bars {
		dates = append(dates, b.Date.Format(util.DateLayout))
		observed = append(observed, opts.LineData{Value: values[i]})
		if i == n-1 {
			projected = append(projected, opts.LineData{Value: values[i]})
		} else {
			projected = append(projected, opts.LineData{Value: missing})
		}
	}
	for _, p := range fc.Points {
		dates = append(dates, p.Date.Format(util.DateLayout))
		observed = append(observed, opts.LineData{Value: missing})
		projected = append(projected, opts.LineData{Value: p.Value})
	}

	line.SetXAxis(dates).
		AddSeries(label, observed).
		AddSeries("Forecast", projected,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	return renderChart(line)
}

func newLine(title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	return line
}

// renderChart renders a standalone HTML page suitable for an iframe srcdoc.
func renderChart(line *charts.Line) (string, error) {
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return buf.String(), nil
}
