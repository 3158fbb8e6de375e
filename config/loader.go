package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv overlays PCR_* environment variables onto cfg.  Only
// non-empty, parseable values override.  Call it before flag parsing
// so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("PCR_ALIAS"); v != "" {
		cfg.Alias = v
	}
	if v := os.Getenv("PCR_CONFIG"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("PCR_HOST"); v != "" {
		cfg.Host = v
	}
	if v, ok := envInt("PCR_PORT"); ok {
		cfg.Port = v
	}
	if v, ok := envInt("PCR_TIMEOUT"); ok && v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v, ok := envInt("PCR_RETRIES"); ok && v >= 0 {
		cfg.ConnectAttempts = v + 1
	}
	if v, ok := envInt("PCR_TYPE_DELAY_MS"); ok && v >= 0 {
		cfg.TypeDelay = time.Duration(v) * time.Millisecond
	}
	if envBool("PCR_NO_TYPEWRITER") {
		cfg.Typewriter = false
	}
	if envBool("PCR_PLAIN") {
		cfg.Plain = true
	}
	if v := os.Getenv("PCR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v, ok := envInt("PCR_VERBOSE"); ok && v >= 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
