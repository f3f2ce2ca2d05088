package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Root directory of the local cache tree
	DataRoot string

	// HTTP client configuration
	RequestTimeout time.Duration
	RetryCount     int
	RetryWait      time.Duration
	UserAgent      string

	// Politeness delays between requests
	ListDelay   time.Duration
	DetailDelay time.Duration

	// Upstream endpoints
	MinutesAPIURL    string
	ShugiinBaseURL   string
	SangiinBaseURL   string
	ShugiinTVBaseURL string
	SessionListURL   string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	retryCount, _ := strconv.Atoi(getEnv("HTTP_RETRY_COUNT", "3"))
	timeoutSec, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "30"))
	retryWaitMs, _ := strconv.Atoi(getEnv("HTTP_RETRY_WAIT_MS", "2500"))
	listDelayMs, _ := strconv.Atoi(getEnv("LIST_DELAY_MS", "500"))
	detailDelayMs, _ := strconv.Atoi(getEnv("DETAIL_DELAY_MS", "1000"))

	return Config{
		DataRoot:         getEnv("DATA_ROOT", "data"),
		RequestTimeout:   time.Duration(timeoutSec) * time.Second,
		RetryCount:       retryCount,
		RetryWait:        time.Duration(retryWaitMs) * time.Millisecond,
		UserAgent:        getEnv("HTTP_USER_AGENT", "kokkaiharvester/1.0"),
		ListDelay:        time.Duration(listDelayMs) * time.Millisecond,
		DetailDelay:      time.Duration(detailDelayMs) * time.Millisecond,
		MinutesAPIURL:    getEnv("MINUTES_API_URL", "https://kokkai.ndl.go.jp/api"),
		ShugiinBaseURL:   getEnv("SHUGIIN_BASE_URL", "https://www.shugiin.go.jp/internet"),
		SangiinBaseURL:   getEnv("SANGIIN_BASE_URL", "https://www.sangiin.go.jp"),
		ShugiinTVBaseURL: getEnv("SHUGIINTV_BASE_URL", "https://www.shugiintv.go.jp/jp/index.php"),
		SessionListURL:   getEnv("SESSION_LIST_URL", "https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/shiryo/kaiki.htm"),
		Environment:      getEnv("KOKKAI_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for invalid values
func (c Config) Validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("DATA_ROOT must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("HTTP_RETRY_COUNT must not be negative")
	}
	if c.DetailDelay <= 0 {
		return fmt.Errorf("DETAIL_DELAY_MS must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
