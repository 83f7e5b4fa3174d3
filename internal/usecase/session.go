package usecase

import (
	"context"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/logger"

	"github.com/google/uuid"
)

// Login outcomes recorded in metrics.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginError   = "error"
	LoginLimited = "limited"
)

// SessionGate owns the LoggedOut <-> LoggedIn transitions. It never stores
// sessions itself; callers load and save the returned value.
type SessionGate struct {
	auth    *Authenticator
	metrics domrepo.Metrics
	log     *logger.Logger
}

func NewSessionGate(auth *Authenticator, metrics domrepo.Metrics, log *logger.Logger) *SessionGate {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionGate{auth: auth, metrics: metrics, log: log}
}

// Login authenticates and returns the logged-in session under a new id; the
// pre-login id is never promoted. On failure the input session is returned
// unchanged together with a *models.StageError.
func (g *SessionGate) Login(ctx context.Context, s models.Session, username, password string) (models.Session, error) {
	ok, name, err := g.auth.Authenticate(ctx, username, password)
	if err != nil {
		g.metrics.RecordLogin(LoginError)
		return s, models.NewStageError(models.KindConfiguration, err)
	}
	if !ok {
		g.metrics.RecordLogin(LoginFailure)
		g.log.Warn("login rejected", logger.String("username", username))
		return s, models.NewStageError(models.KindAuthentication, models.ErrInvalidCredentials)
	}

	g.metrics.RecordLogin(LoginSuccess)
	g.log.Info("login succeeded", logger.String("username", username))
	return models.Session{
		ID:            uuid.NewString(),
		Authenticated: true,
		Username:      username,
		DisplayName:   name,
	}, nil
}

// Logout returns the logged-out state for s. Calling it on a logged-out
// session is a no-op.
func (g *SessionGate) Logout(s models.Session) models.Session {
	if s.LoggedIn() {
		g.log.Info("logout", logger.String("username", s.Username))
	}
	return models.Session{ID: s.ID}
}

// Limited records a throttled login attempt.
func (g *SessionGate) Limited(remote string) error {
	g.metrics.RecordLogin(LoginLimited)
	g.log.Warn("login throttled", logger.String("remote", remote))
	return models.NewStageError(models.KindRateLimited, models.ErrRateLimited)
}
