package config // package config loads application configuration from environment variables

import (
	"errors"  // errors joins the list of missing variables into one error
	"fmt"     // fmt formats validation messages
	"os"      // os provides access to environment variables
	"strings" // strings normalizes driver names
	"time"    // time resolves the display time zone

	"github.com/joho/godotenv" // godotenv seeds the environment from a .env file
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  MySQL settings are only required when DB_DRIVER
// is "mysql"; DBPath is only used by the sqlite driver.
type Config struct {
	Env              string         // application environment (e.g. "dev", "prod")
	Port             string         // HTTP port to listen on
	DBDriver         string         // "mysql" or "sqlite"
	DBUser           string         // database username
	DBPass           string         // database password (optional)
	DBHost           string         // database host address
	DBPort           string         // database port number
	DBName           string         // database name
	DBPath           string         // sqlite database file
	FlashSecret      string         // HMAC secret for flash cookies
	Location         *time.Location // zone used to read and display show times
	LogLevel         string         // zap level name
	RabbitURL        string         // AMQP url; empty disables activity events
	ActivityQueue    string         // queue receiving activity events
	ActivityConsumer bool           // run the activity log consumer inside the server
	ActivityLog      string         // file the consumer appends to
}

// Load seeds the environment from the given dotenv files (.env when none
// are named) and reads the configuration.  Variables already set in the
// environment win.  All missing required variables are reported together.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...) // a missing .env file is normal outside development
	return FromEnv()
}

// FromEnv reads the configuration from the current environment only.
func FromEnv() (Config, error) {
	var missing []error
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, fmt.Errorf("missing required env var: %s", key))
		}
		return v
	}

	cfg := Config{
		Env:              getenv("APP_ENV", "dev"),
		Port:             getenv("APP_PORT", "5000"),
		DBDriver:         strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		FlashSecret:      must("FLASH_SECRET"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		RabbitURL:        firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		ActivityQueue:    getenv("ACTIVITY_QUEUE", "booking.activity"),
		ActivityConsumer: envBool("ACTIVITY_CONSUMER", false),
		ActivityLog:      getenv("ACTIVITY_LOG", "logs/activity.log"),
	}

	switch cfg.DBDriver {
	case DriverMySQL:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = getenv("DB_PORT", "3306")
		cfg.DBName = must("DB_NAME")
	case DriverSQLite:
		cfg.DBPath = getenv("DB_PATH", "fyyur.db")
	default:
		missing = append(missing, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}

	loc, err := time.LoadLocation(getenv("APP_TIMEZONE", "UTC"))
	if err != nil {
		missing = append(missing, fmt.Errorf("invalid APP_TIMEZONE: %w", err))
		loc = time.UTC
	}
	cfg.Location = loc

	if len(missing) > 0 {
		return Config{}, errors.Join(missing...)
	}
	return cfg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
