package twelveweeks

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the environment-driven client settings. Programmatic
// construction via New with Options does not require it.
type Config struct {
	// BaseURL is the backend endpoint including the /api/v1 prefix.
	BaseURL string `envconfig:"BASE_URL"`
	// HTTPTimeout bounds each HTTP request end to end.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	// TokenDB overrides the credentials database path; empty selects the
	// XDG default.
	TokenDB string `envconfig:"TOKEN_DB"`
	// Debug enables HTTP request/response dumping.
	Debug bool `envconfig:"DEBUG"`
}

// LoadConfig reads TWELVEWEEKS_* environment variables into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("twelveweeks", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig builds a client from environment-driven settings; opts are
// applied afterwards and win on conflict.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{WithHTTPTimeout(cfg.HTTPTimeout)}
	if cfg.TokenDB != "" {
		base = append(base, WithTokenDBPath(cfg.TokenDB))
	}
	if cfg.Debug {
		base = append(base, WithDebugLogging(true))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}
