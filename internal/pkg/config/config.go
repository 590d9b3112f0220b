package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL is the base URL of the booking backend that owns all
	// business logic (auth, resources, booking workflow).
	BackendURL string `env:"BACKEND_URL, default=http://localhost:8080"`

	Session SessionConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Secret signs the session cookie. Required outside development.
	Secret string `env:"SESSION_SECRET, default=dev-only-secret"`
	// TTL bounds how long an idle session survives in the store.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// CookieName is the fixed name of the session cookie.
	CookieName string `env:"SESSION_COOKIE, default=bookeasy_session"`
	// CookieSecure marks the cookie Secure; enable behind TLS.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE, default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
