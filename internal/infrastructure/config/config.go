package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers selectable through STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"
)

// DefaultJWTSecret is the JWT_SECRET fallback; only acceptable outside production.
const DefaultJWTSecret = "your-secret-key"

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth      AuthConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, default=your-secret-key"`
	Algorithm string `env:"ALGORITHM,  default=HS256"`
	// Lifetimes are in seconds.
	AccessTokenLifetime  int  `env:"ACCESS_TOKEN_LIFETIME,  default=3600"`
	RefreshTokenLifetime int  `env:"REFRESH_TOKEN_LIFETIME, default=604800"`
	RefreshRotation      bool `env:"REFRESH_ROTATION,       default=false"`
	BcryptCost           int  `env:"BCRYPT_COST,            default=10"`
	// HashWorkers of 0 means one worker per CPU.
	HashWorkers int `env:"HASH_WORKERS, default=0"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=sqlite"`

	// DatabaseURL wins over the discrete POSTGRES_* / DB_* settings.
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER,     default=postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD, default=postgres"`
	Host             string `env:"DB_HOST,           default=localhost"`
	Port             string `env:"DB_PORT,           default=5432"`
	Name             string `env:"DB_NAME,           default=notifications"`

	MySQLDSN   string `env:"MYSQL_DSN,   default=root:root@tcp(localhost:3306)/notifications"`
	SQLitePath string `env:"SQLITE_PATH, default=notifications.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=notifications"`
}

type RedisConfig struct {
	// Addr may be empty; Redis is then not used at all.
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type TelemetryConfig struct {
	// Endpoint is the OTLP/HTTP collector address; empty disables export.
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME, default=notification-service"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	switch strings.ToUpper(c.Auth.Algorithm) {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("ALGORITHM %q is not an HMAC algorithm", c.Auth.Algorithm))
	}
	if c.Auth.AccessTokenLifetime <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_LIFETIME must be positive"))
	}
	if c.Auth.RefreshTokenLifetime <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_LIFETIME must be positive"))
	}
	if c.Auth.HashWorkers < 0 {
		errs = append(errs, errors.New("HASH_WORKERS must not be negative"))
	}
	if c.Auth.RefreshRotation && c.Redis.Addr == "" {
		errs = append(errs, errors.New("REFRESH_ROTATION requires REDIS_ADDR"))
	}

	switch c.Store.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of sqlite, postgres, mysql, mongo", c.Store.Driver))
	}

	return errors.Join(errs...)
}

func (a AuthConfig) AccessTTL() time.Duration {
	return time.Duration(a.AccessTokenLifetime) * time.Second
}

func (a AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshTokenLifetime) * time.Second
}

// PostgresDSN returns DATABASE_URL, or builds one from the discrete settings.
func (s StoreConfig) PostgresDSN() string {
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.PostgresUser, s.PostgresPassword),
		Host:   net.JoinHostPort(s.Host, s.Port),
		Path:   "/" + s.Name,
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
