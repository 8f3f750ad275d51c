package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const DefaultBackendURL = "https://aeo-backend-984142772119.us-central1.run.app/api/v1"

type AppConfig struct {
	Environment string
	LogLevel    string
	Port        string
}

type BackendConfig struct {
	URL                    string
	HTTPTimeoutSeconds     int
	RetryMaxElapsedSeconds int
}

type ChartConfig struct {
	TopK int
}

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Chart   ChartConfig
}

// Load reads the environment. main loads .env beforehand.
func Load() (*Config, error) {
	timeout, err := getEnvInt("HTTP_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	retry, err := getEnvInt("RETRY_MAX_ELAPSED_SECONDS", 0)
	if err != nil {
		return nil, err
	}
	topK, err := getEnvInt("CHART_TOP_K", 5)
	if err != nil {
		return nil, err
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("ENVIRONMENT", "local"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Port:        getEnv("PORT", "8080"),
		},
		Backend: BackendConfig{
			URL:                    getEnv("BACKEND_URL", DefaultBackendURL),
			HTTPTimeoutSeconds:     timeout,
			RetryMaxElapsedSeconds: retry,
		},
		Chart: ChartConfig{TopK: topK},
	}, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute http(s) URL, got %q", c.Backend.URL)
	}
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.App.Port)
	}
	if c.Chart.TopK < 1 {
		return fmt.Errorf("CHART_TOP_K must be at least 1, got %d", c.Chart.TopK)
	}
	if c.Backend.HTTPTimeoutSeconds < 0 || c.Backend.RetryMaxElapsedSeconds < 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS and RETRY_MAX_ELAPSED_SECONDS must not be negative")
	}
	return nil
}

func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.HTTPTimeoutSeconds) * time.Second
}

func (b BackendConfig) RetryBudget() time.Duration {
	return time.Duration(b.RetryMaxElapsedSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
