package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/docshare/docshare/backend/go-services/pkg/logger"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Keycloak  KeycloakConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Documents DocumentsConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AllowInsecureToken accepts unsigned bearer tokens. Integration tests only.
	AllowInsecureToken bool
}

// Addr is the listen address.
func (s ServerConfig) Addr() string { return s.Host + ":" + s.Port }

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type KeycloakConfig struct {
	URL      string
	Realm    string
	ClientID string
}

// Issuer is the realm issuer URL, or "" when Keycloak is not configured.
func (k KeycloakConfig) Issuer() string {
	if k.URL == "" || k.Realm == "" {
		return ""
	}
	return strings.TrimRight(k.URL, "/") + "/realms/" + k.Realm
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type RateLimitConfig struct {
	Enabled  bool
	UseRedis bool
	RPS      float64
	Burst    int
	Window   time.Duration
}

// DocumentsConfig tunes the document service.
type DocumentsConfig struct {
	DefaultPageSize int
	DefaultPage     int
	MaxPageSize     int
	// ReturnUpdated makes update and approve return the stored document
	// after the change instead of the snapshot before it.
	ReturnUpdated bool
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "docshare")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("JWT_ISSUER", "docshare")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("DOCUMENTS_DEFAULT_PAGE_SIZE", 10)
	viper.SetDefault("DOCUMENTS_DEFAULT_PAGE", 0)
	viper.SetDefault("DOCUMENTS_MAX_PAGE_SIZE", 100)

	cfg := &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Host:               viper.GetString("SERVER_HOST"),
			Environment:        viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			AllowInsecureToken: viper.GetBool("ALLOW_INSECURE_TOKEN"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Keycloak: KeycloakConfig{
			URL:      viper.GetString("KEYCLOAK_URL"),
			Realm:    viper.GetString("KEYCLOAK_REALM"),
			ClientID: viper.GetString("KEYCLOAK_CLIENT_ID"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Issuer: viper.GetString("JWT_ISSUER"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis: viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:      viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:    viper.GetInt("RATE_LIMIT_BURST"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Documents: DocumentsConfig{
			DefaultPageSize: viper.GetInt("DOCUMENTS_DEFAULT_PAGE_SIZE"),
			DefaultPage:     viper.GetInt("DOCUMENTS_DEFAULT_PAGE"),
			MaxPageSize:     viper.GetInt("DOCUMENTS_MAX_PAGE_SIZE"),
			ReturnUpdated:   viper.GetBool("DOCUMENTS_RETURN_UPDATED"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" && cfg.Keycloak.Issuer() == "" {
		logger.Warnf("neither JWT_SECRET nor KEYCLOAK_URL/KEYCLOAK_REALM is set; protected routes will reject every request")
	}
	if cfg.MongoDB.URI == "" {
		logger.Warnf("MONGODB_URI is not set; using in-memory repositories")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	d := c.Documents
	if d.DefaultPageSize <= 0 || d.MaxPageSize <= 0 {
		return fmt.Errorf("documents page sizes must be positive (default=%d max=%d)", d.DefaultPageSize, d.MaxPageSize)
	}
	if d.DefaultPageSize > d.MaxPageSize {
		return fmt.Errorf("DOCUMENTS_DEFAULT_PAGE_SIZE %d exceeds DOCUMENTS_MAX_PAGE_SIZE %d", d.DefaultPageSize, d.MaxPageSize)
	}
	if d.DefaultPage < 0 {
		return fmt.Errorf("DOCUMENTS_DEFAULT_PAGE must not be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 0) {
		return fmt.Errorf("invalid rate limit rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}
