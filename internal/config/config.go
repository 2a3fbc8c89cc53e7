package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	AllowOrigins    []string
	LogstashTCPAddr string
	MailProvider    string
	ResendAPIKey    string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	MailFrom        string
	OwnerEmail      string
	OwnerName       string
	OTPTTL          time.Duration
	OTPCooldown     time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	provider := strings.ToLower(getenv("MAIL_PROVIDER", "resend"))

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		MailProvider:    provider,
		ResendAPIKey:    getenv("RESEND_API_KEY", ""),
		SMTPHost:        getenv("SMTP_HOST", ""),
		SMTPPort:        getenv("SMTP_PORT", ""),
		SMTPUsername:    getenv("SMTP_USERNAME", ""),
		SMTPPassword:    getenv("SMTP_PASSWORD", ""),
		MailFrom:        must("MAIL_FROM"),
		OwnerEmail:      must("OWNER_EMAIL"),
		OwnerName:       getenv("OWNER_NAME", "Portfolio Owner"),
		OTPTTL:          duration("OTP_TTL", 10*time.Minute),
		OTPCooldown:     duration("OTP_RESEND_COOLDOWN", 60*time.Second),
	}

	switch provider {
	case "resend":
		if cfg.ResendAPIKey == "" {
			panic("missing env: RESEND_API_KEY")
		}
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPPort == "" {
			panic("missing env: SMTP_HOST / SMTP_PORT")
		}
	default:
		panic("unknown MAIL_PROVIDER: " + provider)
	}

	return cfg
}

func duration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", k, raw, d)
		return d
	}
	return v
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
