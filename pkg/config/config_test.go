package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected read timeout %v", c.Server.ReadTimeout)
	}
	if len(c.Market.Tickers) != 6 || c.Market.Tickers[0] != "AAPL" {
		t.Fatalf("unexpected default tickers %v", c.Market.Tickers)
	}
	if !c.Auth.ReloadCredentials {
		t.Fatalf("expected credential reload on by default")
	}
	if c.Forecast.DefaultHorizon != 30 || c.Forecast.Calendar != "daily" {
		t.Fatalf("unexpected forecast defaults %+v", c.Forecast)
	}
}

func TestLoadKeepsExplicitFalse(t *testing.T) {
	c, err := Load(writeConfig(t, "environment: test\nauth:\n  reload_credentials: false\nmetrics:\n  enabled: false\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Auth.ReloadCredentials {
		t.Fatalf("explicit false was overwritten by default")
	}
	if c.Metrics.Enabled {
		t.Fatalf("explicit metrics.enabled=false was overwritten")
	}
}

func TestLoadRejectsBadCalendar(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\nforecast:\n  calendar: lunar\n")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRejectsBadTrustedProxy(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\nserver:\n  trusted_proxies: [\"10.0.0.0/8\", \"nope\"]\n")); err == nil {
		t.Fatalf("expected validation error for bad CIDR")
	}
	c, err := Load(writeConfig(t, "environment: test\nserver:\n  trusted_proxies: [\"10.0.0.0/8\"]\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Server.TrustedProxies) != 1 {
		t.Fatalf("unexpected trusted proxies %v", c.Server.TrustedProxies)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("TICKERS", "AAPL,TSLA")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("SESSION_BACKEND", "redis")
	c, err := LoadWithEnv(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Market.Tickers) != 2 || c.Market.Tickers[1] != "TSLA" {
		t.Fatalf("unexpected tickers %v", c.Market.Tickers)
	}
	if c.Session.Redis.Host != "redis" || c.Session.Redis.Port != 6380 {
		t.Fatalf("unexpected redis addr %s:%d", c.Session.Redis.Host, c.Session.Redis.Port)
	}
	if c.Session.Backend != "redis" {
		t.Fatalf("unexpected backend %s", c.Session.Backend)
	}
}

func TestLoadSampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if c.Auth.CredentialsFile != "config/credentials.yaml" || c.Session.Backend != "memory" {
		t.Fatalf("unexpected sample values %+v %+v", c.Auth, c.Session)
	}
	if c.Market.DefaultStart != "2024-01-01" || c.Market.DefaultEnd != "2024-12-31" {
		t.Fatalf("unexpected default range %s..%s", c.Market.DefaultStart, c.Market.DefaultEnd)
	}
}
