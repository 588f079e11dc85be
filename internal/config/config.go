// internal/config/config.go
//
// Process configuration for the game server.
//
// Values come from the environment. In development an optional .env file is
// loaded first (godotenv), then the environment is parsed into Config
// (caarlos0/env). Every key has a default so the server starts with no setup.
//
// Environment variables:
//   PORT, LOG_LEVEL, CLIENT_ORIGIN, NODE_ENV
//   JWT_SECRET, COOKIE_NAME, SESSION_TTL, HANDLER_TIMEOUT
//   DICTIONARY_URL, RANDOM_WORD_URL, LOOKUP_TIMEOUT, MAX_CANDIDATE_ATTEMPTS
//   DICTIONARY_RPS, DICTIONARY_BURST
//   CACHE_ENABLED, CACHE_DB, CACHE_TTL
//   WORDS_FALLBACK_FILE
//   RATE_LIMIT_RPS, RATE_LIMIT_BURST

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment  string `env:"NODE_ENV" envDefault:"development"`

	// Session cookie (a signed JWT carrying the session id).
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	CookieName     string        `env:"COOKIE_NAME" envDefault:"wordle_session"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	HandlerTimeout time.Duration `env:"HANDLER_TIMEOUT" envDefault:"30s"`

	// External collaborators.
	DictionaryURL        string        `env:"DICTIONARY_URL" envDefault:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	RandomWordURL        string        `env:"RANDOM_WORD_URL" envDefault:"https://random-word-api.herokuapp.com"`
	LookupTimeout        time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"3s"`
	MaxCandidateAttempts int           `env:"MAX_CANDIDATE_ATTEMPTS" envDefault:"5"`
	DictionaryRPS        float64       `env:"DICTIONARY_RPS" envDefault:"5"`
	DictionaryBurst      int           `env:"DICTIONARY_BURST" envDefault:"10"`

	// Dictionary verdict cache.
	CacheEnabled bool          `env:"CACHE_ENABLED" envDefault:"true"`
	CacheDB      string        `env:"CACHE_DB" envDefault:"./data/lookups.db"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"168h"`

	FallbackFile string `env:"WORDS_FALLBACK_FILE"`

	// Inbound per-client rate limit.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.LookupTimeout <= 0 {
		errs = append(errs, errors.New("LOOKUP_TIMEOUT must be positive"))
	}
	if c.HandlerTimeout <= 0 {
		errs = append(errs, errors.New("HANDLER_TIMEOUT must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.MaxCandidateAttempts < 1 {
		errs = append(errs, errors.New("MAX_CANDIDATE_ATTEMPTS must be at least 1"))
	}
	if c.DictionaryRPS <= 0 || c.DictionaryBurst < 1 {
		errs = append(errs, errors.New("DICTIONARY_RPS and DICTIONARY_BURST must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.CacheEnabled && c.CacheDB == "" {
		errs = append(errs, errors.New("CACHE_DB must be set when CACHE_ENABLED is true"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Production reports whether cookies should be issued Secure/SameSite=None.
func (c *Config) Production() bool {
	return c.Environment == "production"
}
