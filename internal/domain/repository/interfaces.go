package repository

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
)

// CredentialStore resolves usernames to credential records.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (models.Credential, bool, error)
}

// SessionStore persists session records for the lifetime of a browser session.
type SessionStore interface {
	Load(ctx context.Context, id string) (models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Delete(ctx context.Context, id string) error
}

// MarketData fetches daily bars for ticker in [start, end).
type MarketData interface {
	Fetch(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error)
	Name() string
}

type Metrics interface {
	RecordLogin(outcome string)
	RecordError(stage string)
	RecordLatency(op string, seconds float64)
	RecordRecommendation(signal string)
	RecordLastPrice(ticker string, price float64)
}
