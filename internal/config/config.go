package config

import "os"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	SecretKey     string
	Email         EmailConfig
}

// EmailConfig holds the SMTP settings used for password-reset mail.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SecretKey:     getenv("SECRET_KEY", "dev-secret-key"),
		Email: EmailConfig{
			SMTPHost:     getenv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getenv("SMTP_PORT", "587"),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
			FromEmail:    getenv("EMAIL_FROM", ""),
			FromName:     getenv("EMAIL_FROM_NAME", "Todo"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
