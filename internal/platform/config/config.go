package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// PolicyPath points at the JSON policy document loaded at startup.
	PolicyPath string

	// Backend selects the persistence layer: memory, postgres or redis.
	Backend     string
	PostgresDSN string
	Redis       RedisConfig

	Kafka KafkaConfig

	// RateLimitPerMinute caps requests per client per minute. Zero disables
	// rate limiting.
	RateLimitPerMinute int
}

// RedisConfig carries connection settings for the optional Redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig carries audit publishing settings. Empty Brokers disables audit.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CREDSTATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("CREDSTATE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	policyPath := os.Getenv("CREDSTATE_POLICY_PATH")
	if policyPath == "" {
		policyPath = "policy.json"
	}

	backend := os.Getenv("CREDSTATE_BACKEND")
	if backend == "" {
		backend = "memory"
	}

	var brokers []string
	if raw := os.Getenv("CREDSTATE_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("CREDSTATE_KAFKA_TOPIC")
	if topic == "" {
		topic = "credstate.audit"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     envOr("CREDSTATE_JWT_ISSUER", "credstate"),
		JWTAudience:   envOr("CREDSTATE_JWT_AUDIENCE", "credstate-clients"),
		PolicyPath:    policyPath,
		Backend:       backend,
		PostgresDSN:   os.Getenv("CREDSTATE_POSTGRES_DSN"),
		Kafka:         KafkaConfig{Brokers: brokers, Topic: topic},
		Redis: RedisConfig{
			URL:          os.Getenv("CREDSTATE_REDIS_URL"),
			PoolSize:     envInt("CREDSTATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CREDSTATE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		RateLimitPerMinute: envInt("CREDSTATE_RATE_LIMIT_PER_MINUTE", 120),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
