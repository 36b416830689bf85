package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "PayPortal"
	defaultAppEnv        = "development"
	defaultHTTPSPort     = "4433"
	defaultHTTPPort      = "8080"
	defaultLogLevel      = "info"
	defaultTokenTTL      = time.Hour
	defaultRateWindow    = 15 * time.Minute
	defaultShutdownDelay = 10 * time.Second

	// Development-only fallbacks. Load refuses to start in production
	// without explicit values for these.
	devCustomerSecret   = "dev-customer-token-secret"
	devEmployeeSecret   = "dev-employee-token-secret"
	devEmployeePassword = "Admin@123"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string
	AppEnv   string
	LogLevel string

	HTTPSPort string
	HTTPPort  string
	CertFile  string
	KeyFile   string

	MongoURL string
	MongoDB  string

	// Each principal type signs and verifies tokens with its own secret.
	CustomerTokenSecret string
	EmployeeTokenSecret string
	TokenTTL            time.Duration

	EmployeeUsername     string
	EmployeePassword     string
	EmployeePasswordHash string

	LoginRateMax         int
	EmployeeLoginRateMax int
	RateWindow           time.Duration

	AllowStatusOverride   bool
	RejectUnknownCurrency bool

	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:  getEnv("APP_NAME", defaultAppName),
		AppEnv:   strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),

		HTTPSPort: getEnv("HTTPS_PORT", defaultHTTPSPort),
		HTTPPort:  getEnv("HTTP_PORT", defaultHTTPPort),
		CertFile:  os.Getenv("CERT_FILE"),
		KeyFile:   os.Getenv("KEY_FILE"),

		MongoURL: os.Getenv("MONGO_URL"),
		MongoDB:  getEnv("MONGO_DB", "payportal"),

		CustomerTokenSecret: os.Getenv("CUSTOMER_JWT_SECRET"),
		EmployeeTokenSecret: os.Getenv("EMPLOYEE_JWT_SECRET"),
		TokenTTL:            defaultTokenTTL,

		EmployeeUsername:     getEnv("EMPLOYEE_USERNAME", "Employee"),
		EmployeePassword:     os.Getenv("EMPLOYEE_PASSWORD"),
		EmployeePasswordHash: os.Getenv("EMPLOYEE_PASSWORD_HASH"),

		LoginRateMax:         5,
		EmployeeLoginRateMax: 3,
		RateWindow:           defaultRateWindow,

		AllowStatusOverride:   true,
		RejectUnknownCurrency: false,

		ShutdownPeriod: defaultShutdownDelay,
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", cfg.TokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.RateWindow, err = getDuration("RATE_WINDOW", cfg.RateWindow); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = getDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateMax, err = getInt("LOGIN_RATE_MAX", cfg.LoginRateMax); err != nil {
		return Config{}, err
	}
	if cfg.EmployeeLoginRateMax, err = getInt("EMPLOYEE_LOGIN_RATE_MAX", cfg.EmployeeLoginRateMax); err != nil {
		return Config{}, err
	}
	if cfg.AllowStatusOverride, err = getBool("ALLOW_STATUS_OVERRIDE", cfg.AllowStatusOverride); err != nil {
		return Config{}, err
	}
	if cfg.RejectUnknownCurrency, err = getBool("REJECT_UNKNOWN_CURRENCY", cfg.RejectUnknownCurrency); err != nil {
		return Config{}, err
	}

	if cfg.IsProduction() {
		if cfg.MongoURL == "" {
			return Config{}, fmt.Errorf("MONGO_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.CustomerTokenSecret == "" {
			return Config{}, fmt.Errorf("CUSTOMER_JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.EmployeeTokenSecret == "" {
			return Config{}, fmt.Errorf("EMPLOYEE_JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.EmployeePasswordHash == "" {
			return Config{}, fmt.Errorf("EMPLOYEE_PASSWORD_HASH must be set when APP_ENV=%s", cfg.AppEnv)
		}
	} else {
		if cfg.CustomerTokenSecret == "" {
			cfg.CustomerTokenSecret = devCustomerSecret
		}
		if cfg.EmployeeTokenSecret == "" {
			cfg.EmployeeTokenSecret = devEmployeeSecret
		}
		if cfg.EmployeePassword == "" && cfg.EmployeePasswordHash == "" {
			cfg.EmployeePassword = devEmployeePassword
		}
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production hardening requirements.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// TLSEnabled reports whether certificate material was supplied.
func (c Config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// HTTPSAddress returns the TLS listen address in the format Fiber expects.
func (c Config) HTTPSAddress() string {
	return listenAddr(c.HTTPSPort)
}

// HTTPAddress returns the redirect listener address.
func (c Config) HTTPAddress() string {
	return listenAddr(c.HTTPPort)
}

func listenAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
