package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	OvertimePolicyGoverned = "governed"
	OvertimePolicyAll      = "all"
)

type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Cron struct {
	SalaryGeneration string
	TotalPayroll     string
	HolidayResync    string
	ScheduleCreation string
}

type Config struct {
	DB                 DB
	RedisAddr          string
	KafkaBroker        string
	Port               string
	JWTSecret          string
	Timezone           string
	Location           *time.Location
	AutoMigrate        bool
	OutboxPollInterval time.Duration
	Cron               Cron
	OvertimePolicy     string
	RateTableVersion   string
	MaxRetries         int
}

// Load reads the process environment. godotenv.Load is expected to have run
// in main before this is called.
func Load() (*Config, error) {
	cfg := &Config{
		DB: DB{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvOrDefault("DB_NAME", "payroll"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		Port:               getEnvOrDefault("PORT", "3000"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Timezone:           getEnvOrDefault("APP_TIMEZONE", "Asia/Manila"),
		AutoMigrate:        parseBoolEnv("DB_AUTO_MIGRATE", false),
		OutboxPollInterval: parseDurationEnv("OUTBOX_POLL_INTERVAL", 3*time.Second),
		Cron: Cron{
			SalaryGeneration: getEnvOrDefault("CRON_SALARY_GENERATION", "30 12 * * *"),
			TotalPayroll:     getEnvOrDefault("CRON_TOTAL_PAYROLL", "*/5 * * * *"),
			HolidayResync:    getEnvOrDefault("CRON_HOLIDAY_RESYNC", "*/5 * * * *"),
			ScheduleCreation: getEnvOrDefault("CRON_SCHEDULE_CREATION", "* * * * *"),
		},
		OvertimePolicy:   strings.ToLower(getEnvOrDefault("OVERTIME_RECOMPUTE_POLICY", OvertimePolicyGoverned)),
		RateTableVersion: getEnvOrDefault("RATE_TABLE_VERSION", "2025-01"),
		MaxRetries:       parseIntEnv("CONNECT_MAX_RETRIES", 5),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	switch cfg.OvertimePolicy {
	case OvertimePolicyGoverned, OvertimePolicyAll:
	default:
		return nil, fmt.Errorf("invalid OVERTIME_RECOMPUTE_POLICY %q", cfg.OvertimePolicy)
	}

	return cfg, nil
}

// RequireKafka is used by the processes that cannot run without a broker.
func (c *Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseIntEnv(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func parseDurationEnv(key string, defaultValue time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
