package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Mail delivery. APIKey doubles as the Resend key when that provider
	// is selected.
	MailProvider string
	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	APIKey       string

	// VerificationTTL is how long an issued code stays valid.
	VerificationTTL time.Duration

	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	SNSRegion      string

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables. Required keys get
// no fallback so that Missing can report them; the server boots regardless
// and answers 500 "missing configuration" until the environment is fixed.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		MailProvider: getEnv("MAIL_PROVIDER", "smtp"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		APIKey:       getEnv("API_KEY", ""),

		VerificationTTL: getEnvDuration("VERIFICATION_TTL", 10*time.Minute),

		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SNSRegion:      getEnv("SNS_REGION", getEnv("AWS_REGION", "us-east-1")),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Missing reports the required keys absent from the loaded configuration,
// in declaration order.
func (c *Config) Missing() []string {
	required := []struct {
		key   string
		value string
	}{
		{"SMTP_HOST", c.SMTPHost},
		{"SMTP_PORT", c.SMTPPort},
		{"SMTP_USERNAME", c.SMTPUsername},
		{"SMTP_PASSWORD", c.SMTPPassword},
		{"SMTP_FROM", c.SMTPFrom},
		{"API_KEY", c.APIKey},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
