// internal/config/config.go
//
// Server configuration. A .env file (if present) is loaded first; real
// environment variables win over it.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	DBPath string `env:"DB_PATH" envDefault:"./data/mindreader.db"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"mindreader_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	NodeEnv        string `env:"NODE_ENV" envDefault:"development"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	// Empty means the embedded catalog.
	TilesFile  string        `env:"TILES_FILE"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`
}

// Production reports whether cookies must be Secure.
func (c Config) Production() bool { return c.NodeEnv == "production" }

// TokenTTL is the JWT lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

// Load reads files (default ".env") into the environment, then parses it.
// Missing files are fine.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return Parse()
}

// Parse reads the current environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.JWTExpiresDays <= 0 {
		return Config{}, fmt.Errorf("parse env: JWT_EXPIRES_DAYS must be positive, got %d", c.JWTExpiresDays)
	}
	return c, nil
}
