package web

import (
	"context"
	"encoding/json"
	"time"

	"StockPulse/internal/domain/models"
	xlogger "StockPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsReadLimit   = 4 << 10
	wsIdleTimeout = 30 * time.Minute
	wsWriteWait   = 10 * time.Second
)

// Origin is checked against Host by the default CheckOrigin.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// DashboardWS answers every inbound DashboardRequest with one
// DashboardResult. Messages on a connection are handled in order. The session
// is reloaded per message; once it is logged out the socket is closed with
// a policy-violation frame.
func (h *Handler) DashboardWS(c echo.Context) error {
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		h.logger.Debug("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx := c.Request().Context()
	sid, user := sessionFrom(c).ID, sessionFrom(c).Username
	conn.SetReadLimit(wsReadLimit)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket closed", xlogger.String("username", user), xlogger.Error(err))
			}
			return nil
		}
		if mt != websocket.TextMessage {
			continue
		}
		if !h.stillLoggedIn(ctx, sid) {
			h.logger.Info("websocket session ended", xlogger.String("username", user))
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "login required")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
			return nil
		}

		req := h.dashboard.NewRequest()
		var res *models.DashboardResult
		if err := json.Unmarshal(data, &req); err != nil {
			res = &models.DashboardResult{Request: req, Failure: &models.Failure{
				Kind:    models.KindValidation,
				Message: "Invalid input: malformed JSON request",
			}}
		} else {
			res = h.runMessage(ctx, req)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(res); err != nil {
			h.logger.Warn("websocket write failed", xlogger.String("username", user), xlogger.Error(err))
			return nil
		}
	}
}

func (h *Handler) stillLoggedIn(ctx context.Context, id string) bool {
	s, err := h.sessions.Load(ctx, id)
	if err != nil {
		h.logger.Error("load session failed", xlogger.Error(err))
		return false
	}
	return s.LoggedIn()
}
