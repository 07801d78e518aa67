// Package config loads the relay's settings from environment variables with
// sensible fallbacks.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	addrEnv          = "DIALTONE_ADDR"
	dbPathEnv        = "DIALTONE_DB_PATH"
	sessionTTLEnv    = "DIALTONE_SESSION_TTL"
	ringTTLEnv       = "DIALTONE_RING_TTL"
	eventRPSEnv      = "DIALTONE_EVENT_RPS"
	eventBurstEnv    = "DIALTONE_EVENT_BURST"
	allowedOriginEnv = "DIALTONE_ALLOWED_ORIGIN"
)

type Config struct {
	Addr          string
	DBPath        string
	SessionTTL    time.Duration
	RingTTL       time.Duration
	EventRPS      float64
	EventBurst    int
	AllowedOrigin string
}

func Load() Config {
	return Config{
		Addr:          envStringWithFallback(addrEnv, ":12000"),
		DBPath:        envStringWithFallback(dbPathEnv, "users.db"),
		SessionTTL:    envDurationWithFallback(sessionTTLEnv, 5*time.Minute),
		RingTTL:       envDurationWithFallback(ringTTLEnv, 90*time.Second),
		EventRPS:      envFloatWithFallback(eventRPSEnv, 30),
		EventBurst:    envIntWithFallback(eventBurstEnv, 60),
		AllowedOrigin: envStringWithFallback(allowedOriginEnv, "*"),
	}
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envStringWithFallback(key, fallback string) string {
	if raw := envString(key); raw != "" {
		return raw
	}
	return fallback
}

func envIntWithFallback(key string, fallback int) int {
	raw := envString(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envFloatWithFallback(key string, fallback float64) float64 {
	raw := envString(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envDurationWithFallback(key string, fallback time.Duration) time.Duration {
	raw := envString(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
