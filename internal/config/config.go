// Package config loads server settings from the environment.
// A .env file in the working directory is read first (development only);
// real environment variables always win.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// DevSessionSecret is the SESSION_SECRET default; it is refused in production.
const DevSessionSecret = "dev_secret_change_me"

// Config holds every tunable of the server.
type Config struct {
	Port           string        `env:"PORT,default=5175"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
	LogPretty      bool          `env:"LOG_PRETTY,default=false"`
	WordsFile      string        `env:"WORDS_FILE"`
	StoreDriver    string        `env:"STORE_DRIVER,default=memory"`
	DatabasePath   string        `env:"DATABASE_PATH,default=./data/hangman.db"`
	SessionSecret  string        `env:"SESSION_SECRET,default=dev_secret_change_me"`
	CookieName     string        `env:"COOKIE_NAME,default=hangman_player"`
	AppEnv         string        `env:"APP_ENV,default=development"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN,default=http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Addr is the listen address derived from Port.
func (c Config) Addr() string { return ":" + c.Port }

// Load reads .env (if present) and decodes the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv decodes the current environment without touching .env.
func FromEnv() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case "memory", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("config: STORE_DRIVER must be memory or sqlite, got %q", c.StoreDriver)
	}
	if c.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET must not be empty")
	}
	if c.Production() && c.SessionSecret == DevSessionSecret {
		return errors.New("config: SESSION_SECRET must be changed from the development default in production")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
