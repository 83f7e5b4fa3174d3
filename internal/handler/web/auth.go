package web

import (
	"net/http"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LoginForm is the body of POST /login.
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginView{})
}

func (h *Handler) Login(c echo.Context) error {
	remote := c.RealIP()
	if h.limiter != nil && !h.limiter.Allow(remote) {
		err := h.gate.Limited(remote)
		return c.Render(http.StatusTooManyRequests, "login.html", loginView{Failure: usecase.FailureOf(err)})
	}

	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", loginView{
			Failure: &models.Failure{Kind: models.KindValidation, Message: "Malformed login form."},
		})
	}

	prev := sessionFrom(c)
	next, err := h.gate.Login(c.Request().Context(), prev, form.Username, form.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if models.KindOf(err) == models.KindConfiguration {
			status = http.StatusInternalServerError
		}
		return c.Render(status, "login.html", loginView{Username: form.Username, Failure: usecase.FailureOf(err)})
	}

	if ok, err := h.saveSession(c, next); !ok {
		return err
	}
	if next.ID != prev.ID {
		if err := h.sessions.Delete(c.Request().Context(), prev.ID); err != nil {
			h.logger.Warn("drop pre-login session failed", xlogger.Error(err))
		}
		h.setCookie(c, next.ID)
	}
	if h.limiter != nil {
		h.limiter.Reset(remote)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Logout(c echo.Context) error {
	if ok, err := h.saveSession(c, h.gate.Logout(sessionFrom(c))); !ok {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
