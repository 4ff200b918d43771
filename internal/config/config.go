package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                  string
	Env                   string
	DBConn                string
	LogLevel              string
	JWTSecret             string
	AIServiceURL          string
	AIConfidenceThreshold float64
	RatesURL              string
	SMTPHost              string
	SMTPPort              string
	SMTPUsername          string
	SMTPPassword          string
	SenderEmail           string
}

// NewConfig loads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=flowiq password=flowiq dbname=flowiq sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		AIServiceURL: getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		RatesURL:     getEnv("RATES_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@flowiq.app"),
	}

	threshold, err := strconv.ParseFloat(getEnv("AI_CONFIDENCE_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AI_CONFIDENCE_THRESHOLD: %w", err)
	}
	cfg.AIConfidenceThreshold = threshold

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
