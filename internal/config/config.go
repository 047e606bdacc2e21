package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"4000"`
	GinMode     string `env:"GIN_MODE" envDefault:"release"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"` // Optional, category lists are cached when set

	JWTSecret    string        `env:"JWT_SECRET"`                     // Secret key for JWT token signing
	JWTExpiresIn TokenLifetime `env:"JWT_EXPIRES_IN" envDefault:"7d"` // Access token lifetime

	CORSOrigins    []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"*"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","` // IPs or CIDRs allowed to set X-Forwarded-For

	DBQueryTimeout     time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	DBMaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBConnectRetries   uint64        `env:"DB_CONNECT_RETRIES" envDefault:"5"`
	CategoryCacheTTL   time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" envDefault:"20"`        // General API requests per second per client
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"40"`      // Burst size for general API
	RateLimitAuthRPS   float64       `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`    // Stricter limit for register/login
	RateLimitAuthBurst int           `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"` // Burst size for auth endpoints
}

// Load reads an optional .env file and then parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i, origin := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(origin)
	}
	for i, proxy := range cfg.TrustedProxies {
		cfg.TrustedProxies[i] = strings.TrimSpace(proxy)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the settings the process cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.JWTExpiresIn.Duration() <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// TokenLifetime accepts Go durations ("12h"), whole days ("7d") or plain
// seconds ("3600").
type TokenLifetime time.Duration

func (t *TokenLifetime) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		return errors.New("empty token lifetime")
	}

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = TokenLifetime(time.Duration(secs) * time.Second)
		return nil
	}

	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return fmt.Errorf("invalid token lifetime %q", s)
		}
		*t = TokenLifetime(time.Duration(n) * 24 * time.Hour)
		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid token lifetime %q: %w", s, err)
	}
	*t = TokenLifetime(d)
	return nil
}

func (t TokenLifetime) Duration() time.Duration {
	return time.Duration(t)
}
