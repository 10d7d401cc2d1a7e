package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "storefront"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port     string `envconfig:"STOREFRONT_APP_PORT" default:"8090"`
	LogLevel string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig locates the remote catalog/cart REST service.
type BackendConfig struct {
	Host     string `envconfig:"STOREFRONT_BACKEND_HOST" default:"http://localhost:8080"`
	BasePath string `envconfig:"STOREFRONT_BACKEND_BASE_PATH" default:"/api/v1"`

	// Zero means no client-side timeout; a hung request hangs the caller.
	Timeout time.Duration `envconfig:"STOREFRONT_BACKEND_TIMEOUT" default:"0"`
}

// BaseURL joins host and base path without a trailing slash.
func (b BackendConfig) BaseURL() string {
	host := strings.TrimSuffix(strings.TrimSpace(b.Host), "/")
	path := strings.TrimSpace(b.BasePath)
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return host + strings.TrimSuffix(path, "/")
}

// SessionConfig locates the durable local store holding the session identifier.
type SessionConfig struct {
	StorePath string `envconfig:"STOREFRONT_SESSION_STORE_PATH" default:"storefront.db"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a cache backend has been configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"STOREFRONT_CATALOG_CACHE_TTL" default:"5m"`
}
