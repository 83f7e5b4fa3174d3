package web

import (
	"net/http"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

// withSession resolves the session cookie to a stored session, issuing a new
// id on first contact.
func (h *Handler) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := ""
		if ck, err := c.Cookie(h.cfg.CookieName); err == nil {
			if _, err := uuid.Parse(ck.Value); err == nil {
				id = ck.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			h.setCookie(c, id)
		}

		s, err := h.sessions.Load(c.Request().Context(), id)
		if err != nil {
			h.logger.Error("load session failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("session unavailable").WithError(err))
		}
		c.Set(sessionKey, s)
		return next(c)
	}
}

// loggedIn rejects logged-out sessions: API routes get 401, pages are sent
// to the login view.
func (h *Handler) loggedIn(api bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessionFrom(c).LoggedIn() {
				return next(c)
			}
			if api {
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("login required"))
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}
	}
}

// loggedOut keeps logged-in sessions away from the login view.
func (h *Handler) loggedOut(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !sessionFrom(c).LoggedIn() {
			return next(c)
		}
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}

// saveSession stores s. On failure it writes the error response itself and
// reports ok=false.
func (h *Handler) saveSession(c echo.Context, s models.Session) (bool, error) {
	if err := h.sessions.Save(c.Request().Context(), s); err != nil {
		h.logger.Error("save session failed", xlogger.Error(err))
		return false, xhttp.AppErrorResponse(c, xhttp.InternalError("session unavailable").WithError(err))
	}
	c.Set(sessionKey, s)
	return true, nil
}

func (h *Handler) setCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionFrom(c echo.Context) models.Session {
	s, _ := c.Get(sessionKey).(models.Session)
	return s
}
