// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config captures server-level configuration. Empty backend URLs select the
// in-memory implementations, which keeps local development dependency-free.
type Config struct {
	Addr string

	// PostgresURL selects the shared geofence store when set.
	PostgresURL string
	// RedisURL selects the shared breach state cache when set.
	RedisURL string

	// KafkaBrokers enables the breach event journal when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Lanes is the number of parallel evaluation lanes; updates for one user
	// always share a lane.
	Lanes int
	// FanoutLimit caps concurrent notification deliveries per breach.
	FanoutLimit int
}

// FromEnv reads configuration from SAFECIRCLE_* environment variables,
// falling back to development defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("SAFECIRCLE_ADDR", ":8080"),
		PostgresURL: os.Getenv("SAFECIRCLE_POSTGRES_URL"),
		RedisURL:    os.Getenv("SAFECIRCLE_REDIS_URL"),
		KafkaTopic:  envOr("SAFECIRCLE_KAFKA_TOPIC", "breach-events"),
		Lanes:       envIntOr("SAFECIRCLE_LANES", 16),
		FanoutLimit: envIntOr("SAFECIRCLE_FANOUT_LIMIT", 8),
	}
	if brokers := os.Getenv("SAFECIRCLE_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
