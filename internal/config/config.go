package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Addr     string
	LogLevel string

	APIBaseURL string
	Token      string
	Timeout    time.Duration

	ProxyConfigFile string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("CONSOLE_TIMEOUT", "10s"))
	if err != nil {
		timeout = 10 * time.Second
	}

	return &Config{
		Env:      getEnv("CONSOLE_ENV", "development"),
		Addr:     getEnv("CONSOLE_ADDR", ":5666"),
		LogLevel: getEnv("CONSOLE_LOG_LEVEL", "info"),

		APIBaseURL: getEnv("CONSOLE_API_BASE_URL", "http://localhost:8020"),
		Token:      getEnv("CONSOLE_TOKEN", ""),
		Timeout:    timeout,

		ProxyConfigFile: getEnv("CONSOLE_PROXY_CONFIG", ""),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
