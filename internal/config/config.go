package config

import (
	"os"
	"strconv"
)

// Config holds all tunables for a tracker run.
type Config struct {
	// CMSBaseURL is the login portal origin.
	CMSBaseURL string
	// LMSBaseURL is the assignment data origin.
	LMSBaseURL string

	// ConcurrencyLimit bounds the fetch worker pool.
	ConcurrencyLimit int
	// RequestTimeoutMs bounds any single per-course fetch.
	RequestTimeoutMs int
	// LoginTimeoutMs bounds the whole bootstrap step.
	LoginTimeoutMs int

	// LogEvents enables run event logging to stderr.
	LogEvents bool

	// DBPath is the credential store location. Empty means the default
	// under the user's home directory.
	DBPath string
}

// DefaultConfig returns a Config with the portal's production origins and
// timeouts sized for a ~5s parallel fetch, ~20s end-to-end run.
func DefaultConfig() Config {
	return Config{
		CMSBaseURL:       "https://cms.bahria.edu.pk",
		LMSBaseURL:       "https://lms.bahria.edu.pk",
		ConcurrencyLimit: 12,
		RequestTimeoutMs: 10000,
		LoginTimeoutMs:   30000,
		LogEvents:        false,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("BUTRACK_CMS_URL"); v != "" {
		cfg.CMSBaseURL = v
	}
	if v := os.Getenv("BUTRACK_LMS_URL"); v != "" {
		cfg.LMSBaseURL = v
	}
	if v := os.Getenv("BUTRACK_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ConcurrencyLimit = n
		}
	}
	if v := os.Getenv("BUTRACK_REQUEST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutMs = n
		}
	}
	if v := os.Getenv("BUTRACK_LOGIN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoginTimeoutMs = n
		}
	}
	if v := os.Getenv("BUTRACK_LOG_EVENTS"); v != "" {
		cfg.LogEvents, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BUTRACK_DB"); v != "" {
		cfg.DBPath = v
	}

	return cfg
}
