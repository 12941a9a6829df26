package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `env:", prefix=SERVER_"`
	Security     SecurityConfig     `env:", prefix=SECURITY_"`
	AlphaVantage AlphaVantageConfig `env:", prefix=ALPHA_VANTAGE_"`
	Market       MarketConfig       `env:", prefix=MARKET_"`
	SMTP         SMTPConfig         `env:", prefix=SMTP_"`
	Mail         MailConfig         `env:", prefix=MAIL_"`
	Logging      LoggingConfig      `env:", prefix=LOG_"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0"`
	Port         int           `env:"PORT, default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=60s"`
	MaxBodySize  int64         `env:"MAX_BODY_SIZE, default=1048576"`
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	CORSEnabled bool     `env:"CORS_ENABLED, default=true"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
	CORSMethods []string `env:"CORS_METHODS, default=GET,POST,OPTIONS"`
	CORSHeaders []string `env:"CORS_HEADERS, default=Content-Type,X-Request-ID"`
}

// AlphaVantageConfig holds the upstream quote API configuration
type AlphaVantageConfig struct {
	BaseURL           string        `env:"BASE_URL, default=https://www.alphavantage.co/query"`
	APIKey            string        `env:"API_KEY, default=demo"`
	Timeout           time.Duration `env:"TIMEOUT, default=8s"`
	RequestsPerMinute int           `env:"REQUESTS_PER_MINUTE, default=0"` // 0 disables the local limiter
	Burst             int           `env:"BURST, default=4"`
}

// MarketConfig holds market data provider configuration
type MarketConfig struct {
	CatalogFile      string        `env:"CATALOG_FILE"` // Optional YAML instrument catalog
	Interval         string        `env:"INTERVAL, default=30min"`
	HistoryPoints    int           `env:"HISTORY_POINTS, default=20"`
	SyntheticSpacing time.Duration `env:"SYNTHETIC_SPACING, default=30m"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT, default=10s"`
	PollInterval     time.Duration `env:"POLL_INTERVAL, default=30s"`
}

// SMTPConfig holds the outbound mail transport configuration
type SMTPConfig struct {
	Host        string        `env:"HOST"`
	Port        int           `env:"PORT, default=465"`
	Username    string        `env:"USERNAME"`
	Password    string        `env:"PASSWORD"`
	ImplicitTLS bool          `env:"IMPLICIT_TLS, default=true"`
	Timeout     time.Duration `env:"TIMEOUT, default=15s"`
}

// MailConfig holds sender and recipient addresses for relayed messages
type MailConfig struct {
	From string `env:"FROM"`
	To   string `env:"TO"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=json"`
	Output string `env:"OUTPUT, default=stdout"`
}

// Load loads configuration from environment variables using go-envconfig
func Load() (*Config, error) {
	return LoadWithLookuper(envconfig.OsLookuper())
}

// LoadWithLookuper loads configuration from the given lookuper
func LoadWithLookuper(lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Market.HistoryPoints <= 0 {
		return fmt.Errorf("market history points must be positive, got %d", c.Market.HistoryPoints)
	}

	if c.Market.SyntheticSpacing <= 0 {
		return fmt.Errorf("market synthetic spacing must be positive, got %s", c.Market.SyntheticSpacing)
	}

	if c.Market.FetchTimeout <= 0 {
		return fmt.Errorf("market fetch timeout must be positive, got %s", c.Market.FetchTimeout)
	}

	if c.Market.Interval == "" {
		return fmt.Errorf("market interval is required")
	}

	if c.SMTPEnabled() {
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
		}
		if c.Mail.From == "" || c.Mail.To == "" {
			return fmt.Errorf("MAIL_FROM and MAIL_TO are required when SMTP_HOST is set")
		}
	}

	return nil
}

// SMTPEnabled reports whether an outbound mail transport is configured
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != ""
}

// GetServerAddr returns server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
