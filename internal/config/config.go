package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	SessionTTL      time.Duration
	AllowOrigins    []string
	FrontendBaseURL string
	LogstashTCPAddr string

	OTPLength      int
	OTPTTL         time.Duration
	OTPMaxAttempts int
	ResetTokenTTL  time.Duration

	RedisAddr            string
	RedisPassword        string
	OTPRequestsPerHour   int
	ResetRequestsPerHour int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	ContactInbox string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		SessionTTL:      duration(getenv("SESSION_TTL", "24h"), 24*time.Hour),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		FrontendBaseURL: getenv("FRONTEND_BASE_URL", ""),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		OTPLength:      positiveInt(getenv("OTP_LENGTH", "6"), 6),
		OTPTTL:         duration(getenv("OTP_TTL", "10m"), 10*time.Minute),
		OTPMaxAttempts: positiveInt(getenv("OTP_MAX_ATTEMPTS", "5"), 5),
		ResetTokenTTL:  duration(getenv("RESET_TOKEN_TTL", "15m"), 15*time.Minute),

		RedisAddr:            getenv("REDIS_ADDR", ""),
		RedisPassword:        getenv("REDIS_PASSWORD", ""),
		OTPRequestsPerHour:   positiveInt(getenv("OTP_REQUESTS_PER_HOUR", "5"), 5),
		ResetRequestsPerHour: positiveInt(getenv("RESET_REQUESTS_PER_HOUR", "3"), 3),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),
		ContactInbox: getenv("CONTACT_INBOX", ""),
	}
}

func positiveInt(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func duration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
