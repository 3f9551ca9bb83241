package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIURL is the externally reachable base URL, used to build the
	// verification link in outbound email.
	APIURL string `env:"API_URL, default=http://localhost:8080"`

	UploadsDir string `env:"UPLOADS_DIR, default=uploads"`

	JWT    JWTConfig
	Cookie CookieConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// TTLs accept bare seconds or a suffixed form like "15m", "2h", "7d".
	AccessTTL  string `env:"JWT_ACCESS_TTL,  default=1h"`
	RefreshTTL string `env:"JWT_REFRESH_TTL, default=7d"`
}

type CookieConfig struct {
	Domain string `env:"COOKIE_DOMAIN, default=localhost"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=filmoteka"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig configures outbound mail. An empty Host switches the service to
// the log-only sender.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@filmoteka.io"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDev reports whether the service runs in the development environment.
// Cookie security attributes depend on it.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
