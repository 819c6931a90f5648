package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	DBConn          string
	LogLevel        string
	SeedDemoData    bool
	EligibilityCron string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	NotifyEmail     string
}

// NewConfig loads configuration from the environment, with a local
// .env file as fallback for development.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5432 user=reajuste password=reajuste dbname=reajuste sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		SeedDemoData:    getEnv("SEED_DEMO_DATA", "false") == "true",
		EligibilityCron: getEnv("ELIGIBILITY_CRON", "0 8 * * *"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "reajuste@sesp.pr.gov.br"),
		NotifyEmail:     getEnv("NOTIFY_EMAIL", ""),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
