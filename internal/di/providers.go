package di

import (
	"context"
	"fmt"

	"StockPulse/internal/domain/repository"
	"StockPulse/internal/domain/service"
	"StockPulse/internal/handler/web"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/services/forecast"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/kv"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideKVStore creates the session backing store selected by session.backend.
func ProvideKVStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		r := cfg.Session.Redis
		store, err := kv.NewRedisStore(context.Background(),
			kv.WithRedisAddr(r.Host, r.Port),
			kv.WithRedisAuth(r.Password, r.DB),
			kv.WithRedisPrefix(r.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	default:
		return kv.NewMemoryStore(kv.WithMemoryMaxSize(cfg.Session.MemoryMaxSize)), nil
	}
}

// ProvideSessionStore keeps sessions in the kv store.
func ProvideSessionStore(store kv.Store) repository.SessionStore {
	return internalrepo.NewKVSessionStore(store)
}

// ProvideCredentialStore loads the credential file. A missing or malformed
// file aborts startup.
func ProvideCredentialStore(cfg *config.Config) (repository.CredentialStore, error) {
	store, err := internalrepo.NewFileCredentialStore(cfg.Auth.CredentialsFile, cfg.Auth.ReloadCredentials)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return store, nil
}

// ProvideMarketData creates the Yahoo Finance gateway.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	return yahoo.New(cfg.Market.ProviderURL, cfg.Market.Timeout, cfg.Market.Proxy)
}

// ProvideForecaster creates the ARIMA forecaster on the configured calendar.
func ProvideForecaster(cfg *config.Config) service.Forecaster {
	return forecast.NewARIMA(cfg.Forecast.Calendar)
}

// ProvideDashboardUseCase creates the dashboard pipeline.
func ProvideDashboardUseCase(
	cfg *config.Config,
	market repository.MarketData,
	forecaster service.Forecaster,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(market, forecaster, metrics, logger, usecase.DashboardDefaults{
		Tickers: cfg.Market.Tickers,
		Start:   cfg.Market.DefaultStart,
		End:     cfg.Market.DefaultEnd,
		Column:  cfg.Forecast.DefaultColumn,
		Horizon: cfg.Forecast.DefaultHorizon,
	})
}

// ProvideLoginLimiter creates the per-address login throttle.
func ProvideLoginLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Auth.LoginRate.Capacity, cfg.Auth.LoginRate.RefillPerSec)
}

// ProvideWebHandler creates the echo handler for views, API and websocket.
func ProvideWebHandler(
	cfg *config.Config,
	sessions repository.SessionStore,
	gate *usecase.SessionGate,
	dashboard *usecase.DashboardUseCase,
	limiter *ratelimit.Limiter,
	renderer *web.Renderer,
	logger *applogger.Logger,
) *web.Handler {
	return web.NewHandler(web.Config{
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure,
	}, sessions, gate, dashboard, limiter, renderer, logger)
}

// ProvideHTTPServer creates the echo server with every handler registered.
func ProvideHTTPServer(cfg *config.Config, handler *web.Handler, logger *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer([]xhttp.Handler{handler},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithCORS(cfg.Server.CORSOrigins...),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies...),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(logger),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, srv *xhttp.Server, store kv.Store) *server.App {
	return server.New(cfg, logger, srv, store)
}
