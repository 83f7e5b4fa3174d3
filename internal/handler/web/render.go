package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"label": models.ColumnLabel,
		"date":  func(t time.Time) string { return t.Format(util.DateLayout) },
		"num":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"int":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type loginView struct {
	Username string
	Failure  *models.Failure
}

type dashboardView struct {
	Session       models.Session
	Tickers       []string
	Columns       []string
	Request       models.DashboardRequest
	MinHorizon    int
	MaxHorizon    int
	Result        *models.DashboardResult
	Failure       *models.Failure
	HistoryChart  string
	ForecastChart string
}

// Bars returns the rows of the raw data table.
func (v dashboardView) Bars() []models.Bar {
	if v.Result == nil || v.Result.Series == nil {
		return nil
	}
	return v.Result.Series.Bars
}

// HasAdjClose reports whether the table shows the adjusted close column.
func (v dashboardView) HasAdjClose() bool {
	return v.Result != nil && v.Result.Series != nil && v.Result.Series.HasAdjClose
}
