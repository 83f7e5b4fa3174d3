//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/internal/handler/web"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Repositories
		ProvideKVStore,
		ProvideSessionStore,
		ProvideCredentialStore,
		ProvideMarketData,
		ProvideForecaster,

		// Use cases
		usecase.NewAuthenticator,
		usecase.NewSessionGate,
		ProvideDashboardUseCase,

		// Transport
		ProvideLoginLimiter,
		web.NewRenderer,
		ProvideWebHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
