package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port             string
	DBConn           string
	LogLevel         string
	JWTSecret        string
	RiskModelURL     string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
	ReminderEmail    string
	ReminderDays     int
	SnapshotSchedule string
	SweepSchedule    string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	reminderDays, err := strconv.Atoi(getEnv("REMINDER_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_DAYS: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5432 user=tradeline password=tradeline dbname=tradeline sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		RiskModelURL:     getEnv("RISK_MODEL_URL", "http://localhost:9090/risk/assess"),
		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnv("SMTP_PORT", "25"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "noreply@tradelineai.local"),
		ReminderEmail:    getEnv("REMINDER_EMAIL", ""),
		ReminderDays:     reminderDays,
		SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 2 * * *"),
		SweepSchedule:    getEnv("SWEEP_SCHEDULE", "0 3 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RiskModelURL == "" {
		return nil, fmt.Errorf("RISK_MODEL_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
