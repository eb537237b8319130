package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT sessions
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Email verification / password reset
	RequireVerification bool
	VerifyTokenExpiry   time.Duration
	ResetTokenExpiry    time.Duration
	SendGridAPIKey      string
	MailSender          string
	MailSenderName      string
	BaseURL             string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "cradlelog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		RequireVerification: getEnv("REQUIRE_EMAIL_VERIFICATION", "true") == "true",
		VerifyTokenExpiry:   parseDuration(getEnv("VERIFY_TOKEN_EXPIRY", "24h"), 24*time.Hour),
		ResetTokenExpiry:    parseDuration(getEnv("RESET_TOKEN_EXPIRY", "1h"), time.Hour),
		SendGridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		MailSender:          getEnv("MAIL_SENDER", ""),
		MailSenderName:      getEnv("MAIL_SENDER_NAME", "Cradlelog"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// MailEnabled reports whether outbound email delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.MailSender != ""
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
