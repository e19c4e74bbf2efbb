package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultFromEmail = "Wright Angle Carpentry <onboarding@resend.dev>"
	DefaultToEmail   = "james@wrightanglecarpentry.co.uk"
	DefaultSubject   = "New enquiry from Wright Angle Carpentry website"
)

// Email provider names accepted by EMAIL_PROVIDER.
const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

var defaultAllowedOrigins = []string{
	"https://wrightanglecarpentry.co.uk",
	"https://www.wrightanglecarpentry.co.uk",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	AllowedOrigins []string
	// Email delivery
	EmailProvider    string
	ResendAPIKey     string
	ContactFromEmail string
	ContactEmailTo   string
	ContactSubject   string
	EmailSendTimeout time.Duration
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        ginMode(getEnv("GIN_MODE", "debug")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", defaultAllowedOrigins),
		// Email delivery
		EmailProvider:    strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderResend)),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ContactFromEmail: getEnvNonEmpty("CONTACT_FROM_EMAIL", DefaultFromEmail),
		ContactEmailTo:   getEnvNonEmpty("CONTACT_TO_EMAIL", DefaultToEmail),
		ContactSubject:   getEnvNonEmpty("CONTACT_SUBJECT", DefaultSubject),
		EmailSendTimeout: time.Duration(getEnvInt("EMAIL_SEND_TIMEOUT_SECONDS", 10)) * time.Second,
		SMTPHost:         getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 600),  // 10 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5), // 5 enquiries per window
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.EmailProvider == ProviderResend && cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY is missing. Contact form submissions will fail.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// ginMode keeps unknown values away from gin.SetMode, which panics on them.
func ginMode(mode string) string {
	switch mode {
	case "debug", "release", "test":
		return mode
	}
	return "debug"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvNonEmpty treats an empty value the same as an unset one.
func getEnvNonEmpty(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimRight(strings.TrimSpace(item), "/")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
