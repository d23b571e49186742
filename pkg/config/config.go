package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full application configuration, loaded from the
// environment with the SHOPCART_ prefix.
type Config struct {
	App       AppConfig       `envconfig:"APP"`
	DB        DBConfig        `envconfig:"DB"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Password  PasswordConfig  `envconfig:"PASSWORD"`
	Features  FeatureFlags    `envconfig:"FEATURES"`
}

type AppConfig struct {
	Env          string        `envconfig:"ENV" default:"development"`
	Port         int           `envconfig:"PORT" default:"8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	LogWarnStack bool          `envconfig:"LOG_WARN_STACK" default:"false"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
}

type DBConfig struct {
	DSN             string        `envconfig:"DSN" required:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"5m"`
}

type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
}

type RateLimitConfig struct {
	Enabled     bool          `envconfig:"ENABLED" default:"true"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"120"`
}

type PasswordConfig struct {
	ArgonMemory  uint32 `envconfig:"ARGON_MEMORY" default:"65536"`
	ArgonTime    uint32 `envconfig:"ARGON_TIME" default:"3"`
	ArgonThreads uint8  `envconfig:"ARGON_THREADS" default:"2"`
	SaltLength   uint32 `envconfig:"SALT_LENGTH" default:"16"`
	KeyLength    uint32 `envconfig:"KEY_LENGTH" default:"32"`
}

type FeatureFlags struct {
	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"false"`
}

// Load reads .env when present, then resolves the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SHOPCART", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
