package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	defaultReconcileSchedule = "*/30 * * * * *"
	defaultRelaySchedule     = "*/5 * * * * *"
	defaultJobBatchSize      = 100
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	// Cron expressions with a leading seconds field.
	ReconcileSchedule string
	RelaySchedule     string
	JobBatchSize      int

	// PriceBaseFeeCents is added to every quote.
	PriceBaseFeeCents int64
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	var missing []string
	for name, value := range map[string]string{
		"HTTP_PORT":  c.HTTPPort,
		"DB_HOST":    c.DBHost,
		"DB_PORT":    c.DBPort,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.PriceBaseFeeCents < 0 {
		return fmt.Errorf("PRICE_BASE_FEE must not be negative, got %d", c.PriceBaseFeeCents)
	}
	return nil
}

// ConfigFromEnv reads the settings through getenv, applying defaults to
// the optional ones.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		HTTPPort:          getenv("HTTP_PORT"),
		DBHost:            getenv("DB_HOST"),
		DBPort:            getenv("DB_PORT"),
		DBUser:            getenv("DB_USER"),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME"),
		DBSslMode:         withDefault(getenv("DB_SSLMODE"), "disable"),
		JWTSecret:         getenv("JWT_SECRET"),
		ReconcileSchedule: withDefault(getenv("RECONCILE_SCHEDULE"), defaultReconcileSchedule),
		RelaySchedule:     withDefault(getenv("RELAY_SCHEDULE"), defaultRelaySchedule),
		JobBatchSize:      defaultJobBatchSize,
	}

	if raw := getenv("JOB_BATCH_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("JOB_BATCH_SIZE: %w", err)
		}
		c.JobBatchSize = n
	}
	if raw := getenv("PRICE_BASE_FEE"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("PRICE_BASE_FEE: %w", err)
		}
		c.PriceBaseFeeCents = n
	}

	return c, c.Validate()
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
