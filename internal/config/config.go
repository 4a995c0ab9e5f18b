package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "BornOtomasyon"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultTokenTTL      = 24 * time.Hour
	defaultCodeTTL       = 10 * time.Minute
	defaultShutdownDelay = 10 * time.Second
	defaultCORSOrigins   = "http://localhost:4200"
	defaultSMTPPort      = 587
	shutdownEnvVar       = "SHUTDOWN_TIMEOUT"
	tokenTTLEnvVar       = "TOKEN_TTL"
	codeTTLEnvVar        = "CODE_TTL"
	resendCooldownEnvVar = "RESEND_COOLDOWN"
	smtpPortEnvVar       = "SMTP_PORT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName     string
	AppEnv      string
	Port        string
	LogLevel    string
	DatabaseURL string
	RedisURL    string
	CORSOrigins string

	// JWTSecret signs bearer tokens. Issuance fails without it.
	JWTSecret string
	TokenTTL  time.Duration

	// CodeTTL bounds the lifetime of verification and reset codes.
	CodeTTL time.Duration

	// ResendCooldown throttles resend-verification and forgot-password
	// per email when Redis is available. Zero disables the cooldown.
	ResendCooldown time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CORSOrigins:    getEnv("CORS_ORIGINS", defaultCORSOrigins),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       defaultTokenTTL,
		CodeTTL:        defaultCodeTTL,
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       defaultSMTPPort,
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
		ShutdownPeriod: defaultShutdownDelay,
	}

	var err error
	if cfg.TokenTTL, err = durationEnv(tokenTTLEnvVar, cfg.TokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.CodeTTL, err = durationEnv(codeTTLEnvVar, cfg.CodeTTL); err != nil {
		return Config{}, err
	}
	if cfg.ResendCooldown, err = durationEnv(resendCooldownEnvVar, 0); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = durationEnv(shutdownEnvVar, cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(smtpPortEnvVar); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", smtpPortEnvVar, err)
		}
		cfg.SMTPPort = port
	}

	if !cfg.IsDev() && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development-like environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// SMTPConfigured reports whether an SMTP endpoint was provided.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
