// Package web serves the login and dashboard views, the JSON dashboard API
// and the dashboard websocket.
package web

import (
	"net/http"

	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Config controls the session cookie.
type Config struct {
	CookieName   string
	CookieSecure bool
}

// Handler wires the session gate and the dashboard pipeline to echo routes.
type Handler struct {
	cfg       Config
	sessions  domrepo.SessionStore
	gate      *usecase.SessionGate
	dashboard *usecase.DashboardUseCase
	limiter   *ratelimit.Limiter
	renderer  *Renderer
	logger    *xlogger.Logger
}

func NewHandler(
	cfg Config,
	sessions domrepo.SessionStore,
	gate *usecase.SessionGate,
	dashboard *usecase.DashboardUseCase,
	limiter *ratelimit.Limiter,
	renderer *Renderer,
	logger *xlogger.Logger,
) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "stockpulse_session"
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Handler{
		cfg:       cfg,
		sessions:  sessions,
		gate:      gate,
		dashboard: dashboard,
		limiter:   limiter,
		renderer:  renderer,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h.renderer

	e.GET("/", h.Index, h.withSession)

	e.GET("/login", h.LoginPage, h.withSession, h.loggedOut)
	e.POST("/login", h.Login, h.withSession, h.loggedOut)
	e.POST("/logout", h.Logout, h.withSession, h.loggedIn(false))

	e.GET("/dashboard", h.DashboardPage, h.withSession, h.loggedIn(false))
	e.GET("/api/dashboard", h.DashboardAPI, h.withSession, h.loggedIn(true))
	e.GET("/ws/dashboard", h.DashboardWS, h.withSession, h.loggedIn(true))
}

// Index redirects to the view of the current session state.
func (h *Handler) Index(c echo.Context) error {
	if sessionFrom(c).LoggedIn() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

var _ xhttp.Handler = (*Handler)(nil)
