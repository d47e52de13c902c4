package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	DataDir            string
	DatabaseURL        string
	FrontendDir        string
	Environment        string
	RunSeed            bool
	SeedPassword       string
	SessionTTL         time.Duration
	SessionCookie      string
	LoginRatePerMinute int
	LoginBurst         int
	PTOAnnualDays      int
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DataDir:            getEnv("DATA_DIR", "data"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		FrontendDir:        getEnv("FRONTEND_DIR", "public"),
		Environment:        getEnv("APP_ENV", "development"),
		RunSeed:            getEnvBool("RUN_SEED", true),
		SeedPassword:       getEnv("SEED_PASSWORD", "changeme"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionCookie:      getEnv("SESSION_COOKIE", "timeoff_session"),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginBurst:         getEnvInt("LOGIN_BURST", 5),
		PTOAnnualDays:      getEnvInt("PTO_ANNUAL_DAYS", 7),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("either DATABASE_URL or DATA_DIR is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.LoginRatePerMinute <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive")
	}
	if c.PTOAnnualDays <= 0 {
		return fmt.Errorf("PTO_ANNUAL_DAYS must be positive")
	}
	if c.Environment == "production" && c.RunSeed && c.SeedPassword == "changeme" {
		return fmt.Errorf("SEED_PASSWORD must be changed or RUN_SEED disabled in production")
	}
	return nil
}
