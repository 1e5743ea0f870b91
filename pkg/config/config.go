package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv          = "PROCURETRACK_APP_ENV"
	EnvAppPort         = "PROCURETRACK_APP_PORT"
	EnvJWTSecret       = "PROCURETRACK_JWT_SECRET"
	EnvJWTIssuer       = "PROCURETRACK_JWT_ISSUER"
	EnvRedisURL        = "PROCURETRACK_REDIS_URL"
	EnvUpstreamBaseURL = "PROCURETRACK_UPSTREAM_BASE_URL"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Draft    DraftConfig
	Print    PrintConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PROCURETRACK_APP_ENV" required:"true"`
	Port         string   `envconfig:"PROCURETRACK_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PROCURETRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PROCURETRACK_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PROCURETRACK_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret            string `envconfig:"PROCURETRACK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PROCURETRACK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PROCURETRACK_JWT_EXPIRATION_MINUTES" default:"60"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROCURETRACK_REDIS_URL" required:"true"`
	Password     string        `envconfig:"PROCURETRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROCURETRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROCURETRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROCURETRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROCURETRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROCURETRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROCURETRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// UpstreamConfig points at the procurement API that owns purchase order
// persistence and numbering.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"PROCURETRACK_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"PROCURETRACK_UPSTREAM_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream base url must be http(s), got %q", u.BaseURL)
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}
	return nil
}

type DraftConfig struct {
	TTL time.Duration `envconfig:"PROCURETRACK_DRAFT_TTL" default:"24h"`
}

// PrintConfig holds the static signature block stamped onto printable orders.
type PrintConfig struct {
	SignatureName  string `envconfig:"PROCURETRACK_PRINT_SIGNATURE_NAME" default:"Abdun Nafih"`
	SignatureTitle string `envconfig:"PROCURETRACK_PRINT_SIGNATURE_TITLE" default:"General Manager"`
}
