// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spendwise/backend/internal/money"
)

type Config struct {
	APIURL string
	Port   string

	// sqlite is used unless DBHost is set
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	LogFormat string
	GinMode   string

	// CORS is only enabled if origins are set
	CORSAllowOrigins []string
	EnablePprof      bool

	// Events are only published if AMQPURL is set
	AMQPURL      string
	AMQPExchange string

	Currency string
	Locale   string
}

// Load reads the configuration. Variables from a .env file in the working
// directory are loaded first, but never override variables that are set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:       os.Getenv("API_URL"),
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "data/spendwise.db"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       getEnv("DB_NAME", "spendwise"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		GinMode:      getEnv("GIN_MODE", "release"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendwise"),
		Currency:     getEnv("CURRENCY", money.DefaultCurrency),
		Locale:       getEnv("LOCALE", money.DefaultLocale),

		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
	}
}

// Validate reports all problems with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("API_URL must be set"))
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_URL %q is not an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %q must be a number between 1 and 65535", c.Port))
	}

	if c.DBHost == "" && c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty when DB_HOST is not set"))
	}

	if c.DBHost != "" && c.DBUser == "" {
		errs = append(errs, errors.New("DB_USER must be set when DB_HOST is set"))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be human or json", c.LogFormat))
	}

	if c.AMQPURL != "" {
		u, err := url.Parse(c.AMQPURL)
		if err != nil || (u.Scheme != "amqp" && u.Scheme != "amqps") {
			errs = append(errs, fmt.Errorf("AMQP_URL %q must be an amqp:// or amqps:// URL", c.AMQPURL))
		}

		if c.AMQPExchange == "" {
			errs = append(errs, errors.New("AMQP_EXCHANGE must not be empty when AMQP_URL is set"))
		}
	}

	for _, origin := range c.CORSAllowOrigins {
		if origin == "*" {
			continue
		}

		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("CORS_ALLOW_ORIGINS entry %q is neither * nor an absolute URL", origin))
		}
	}

	if _, err := money.NewFormatter(c.Currency, c.Locale); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// PostgresDSN returns the connection string for DBHost.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
