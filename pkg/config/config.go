package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Log         struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"5s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
		TrustedProxies  []string      `yaml:"trusted_proxies"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Auth struct {
		CredentialsFile   string `yaml:"credentials_file" default:"config/credentials.yaml"`
		ReloadCredentials bool   `yaml:"reload_credentials" default:"true"`
		CookieName        string `yaml:"cookie_name" default:"stockpulse_session"`
		CookieSecure      bool   `yaml:"cookie_secure"`
		LoginRate         struct {
			Capacity     float64 `yaml:"capacity" default:"5"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"0.5"`
		} `yaml:"login_rate"`
	} `yaml:"auth"`
	Session struct {
		Backend       string `yaml:"backend" default:"memory"`
		MemoryMaxSize int    `yaml:"memory_max_size" default:"10000"`
		Redis         struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"stockpulse"`
		} `yaml:"redis"`
	} `yaml:"session"`
	Market struct {
		ProviderURL  string        `yaml:"provider_url" default:"https://query1.finance.yahoo.com"`
		Timeout      time.Duration `yaml:"timeout" default:"30s"`
		Proxy        string        `yaml:"proxy"`
		Tickers      []string      `yaml:"tickers" default:"[\"AAPL\",\"MSFT\",\"GOOG\",\"GOOGL\",\"META\",\"TSLA\"]"`
		DefaultStart string        `yaml:"default_start" default:"2024-01-01"`
		DefaultEnd   string        `yaml:"default_end" default:"2024-12-31"`
	} `yaml:"market"`
	Forecast struct {
		Calendar       string `yaml:"calendar" default:"daily"`
		DefaultHorizon int    `yaml:"default_horizon" default:"30"`
		DefaultColumn  string `yaml:"default_column" default:"close"`
	} `yaml:"forecast"`
}

// Default returns a configuration with every default applied and no file read.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Defaults first so explicit zero values in the file (e.g. false) survive.
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("STOCKPULSE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("CREDENTIALS_FILE"); v != "" {
		c.Auth.CredentialsFile = v
	}
	if v := os.Getenv("SESSION_BACKEND"); v != "" {
		c.Session.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Session.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Session.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Market.Proxy = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		c.Market.Tickers = strings.Split(v, ",")
	}

	return c, c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Auth.CredentialsFile == "" {
		return fmt.Errorf("auth.credentials_file is required")
	}
	for _, cidr := range c.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("server.trusted_proxies: invalid CIDR '%s'", cidr)
		}
	}
	if c.Session.Backend != "memory" && c.Session.Backend != "redis" {
		return fmt.Errorf("session.backend must be 'memory' or 'redis', got '%s'", c.Session.Backend)
	}
	if len(c.Market.Tickers) == 0 {
		return fmt.Errorf("market.tickers cannot be empty")
	}
	if c.Market.ProviderURL == "" {
		return fmt.Errorf("market.provider_url is required")
	}
	if c.Forecast.Calendar != "daily" && c.Forecast.Calendar != "weekdays" {
		return fmt.Errorf("forecast.calendar must be 'daily' or 'weekdays', got '%s'", c.Forecast.Calendar)
	}
	if c.Forecast.DefaultHorizon < 1 || c.Forecast.DefaultHorizon > 90 {
		return fmt.Errorf("forecast.default_horizon must be within [1, 90], got %d", c.Forecast.DefaultHorizon)
	}
	return nil
}
