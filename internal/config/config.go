package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process.
// All values must come from env (or an env-file loaded at startup).
// No business logic should depend on raw environment variables.
type Config struct {
	App   AppConfig
	Auth  AuthConfig
	Store StoreConfig
	Redis RedisConfig
}

type AppConfig struct {
	Env  string
	Port int

	// AllowedOrigins is a comma-separated CORS allowlist. "*" allows everything.
	AllowedOrigins string

	// SeedFile is an optional CSV of loads imported on startup.
	SeedFile string
}

type AuthConfig struct {
	// APIKey is the shared secret expected in the X-API-Key header.
	APIKey string

	// JWTSecret enables the bearer-token exchange endpoint when set.
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
}

// StoreConfig selects and configures the load repository backend.
type StoreConfig struct {
	// Driver is "memory" or "postgres".
	Driver string

	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode accepts: disable, require, verify-ca, verify-full.
	SSLMode string
}

type RedisConfig struct {
	// Host empty means the stats cache is disabled.
	Host string
	Port int
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

func Load() (Config, error) {
	// Local convenience; missing files are fine.
	_ = godotenv.Load(".env.local", ".env")

	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.AllowedOrigins = strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	c.App.SeedFile = strings.TrimSpace(os.Getenv("SEED_FILE"))

	c.Auth.APIKey = os.Getenv("API_KEY")
	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.TokenTTL = optDuration("TOKEN_TTL")

	c.Store.Driver = strings.TrimSpace(os.Getenv("STORE_DRIVER"))
	c.Store.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	if v := strings.TrimSpace(os.Getenv("DB_PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("DB_PORT must be an integer, got %q", v))
		}
		c.Store.Port = n
	}
	c.Store.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.Store.Password = os.Getenv("DB_PASSWORD")
	c.Store.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.Store.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if v := strings.TrimSpace(os.Getenv("REDIS_PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("REDIS_PORT must be an integer, got %q", v))
		}
		c.Redis.Port = n
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}
	if c.App.AllowedOrigins == "" {
		c.App.AllowedOrigins = "*"
	}

	if c.Auth.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		// Short-lived tokens; the API key is the long-lived credential.
		c.Auth.TokenTTL = 15 * time.Minute
	}

	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverMemory
	}
	switch c.Store.Driver {
	case StoreDriverMemory:
		// nothing else required
	case StoreDriverPostgres:
		if c.Store.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required when STORE_DRIVER is postgres"))
		}
		if c.Store.Port <= 0 || c.Store.Port > 65535 {
			errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.Store.Port))
		}
		if c.Store.User == "" {
			errs = append(errs, errors.New("DB_USER is required when STORE_DRIVER is postgres"))
		}
		if c.Store.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required when STORE_DRIVER is postgres"))
		}
		if c.Store.SSLMode == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("DB_SSLMODE is required in production"))
			} else {
				// Local-friendly default; production must be explicit.
				c.Store.SSLMode = "disable"
			}
		}
		if c.Store.SSLMode != "" && !isValidSSLMode(c.Store.SSLMode) {
			errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.Store.SSLMode))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be memory or postgres, got %q", c.Store.Driver))
	}

	if c.Redis.Host != "" && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Store.Host,
		c.Store.Port,
		c.Store.User,
		c.Store.Password,
		c.Store.Name,
		c.Store.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
