package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Promotion PromotionConfig
	Server    ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// RedisConfig holds Redis connection settings (job queue and article cache)
type RedisConfig struct {
	Addr string
}

// KafkaConfig holds Kafka event streaming configuration
type KafkaConfig struct {
	Brokers string
	Topic   string
}

// PromotionConfig holds cascade-engine tunables.
// Values not overridden per project are taken from here.
type PromotionConfig struct {
	MaxActiveRunsPerProject int           // concurrent runs a single project may hold
	WorkerMaxIterations     int           // runs processed per worker-loop invocation
	WorkerSleep             time.Duration // pause between worker-loop iterations
	StuckNodeMaxAge         time.Duration // node age before recovery takes over
	CrowdRetryDelay         time.Duration // cooldown between crowd_waiting re-checks
	ReferralPercent         float64       // commission awarded to referrer on charge
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// stuckNodeMaxAgeFloor is the minimum enforced recovery age. Operators can
// raise STUCK_NODE_MAX_AGE but never lower it below this.
const stuckNodeMaxAgeFloor = 180 * time.Second

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Redis configuration
	cfg.Redis.Addr = getEnvWithDefault("REDIS_HOST", "localhost:6379")

	// Kafka configuration
	if cfg.Kafka.Brokers, err = requireEnv("KAFKA_BROKERS"); err != nil {
		return nil, err
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "promotion-events")

	// Promotion engine configuration
	if cfg.Promotion.MaxActiveRunsPerProject, err = intEnvWithDefault("MAX_ACTIVE_RUNS_PER_PROJECT", 2); err != nil {
		return nil, err
	}
	if cfg.Promotion.WorkerMaxIterations, err = intEnvWithDefault("WORKER_MAX_ITERATIONS", 20); err != nil {
		return nil, err
	}
	workerSleepMs, err := intEnvWithDefault("WORKER_SLEEP_MS", 200)
	if err != nil {
		return nil, err
	}
	cfg.Promotion.WorkerSleep = time.Duration(workerSleepMs) * time.Millisecond

	stuckMaxAgeSec, err := intEnvWithDefault("STUCK_NODE_MAX_AGE_SECONDS", 900)
	if err != nil {
		return nil, err
	}
	cfg.Promotion.StuckNodeMaxAge = time.Duration(stuckMaxAgeSec) * time.Second
	if cfg.Promotion.StuckNodeMaxAge < stuckNodeMaxAgeFloor {
		cfg.Promotion.StuckNodeMaxAge = stuckNodeMaxAgeFloor
	}

	crowdRetryDelaySec, err := intEnvWithDefault("CROWD_RETRY_DELAY_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	cfg.Promotion.CrowdRetryDelay = time.Duration(crowdRetryDelaySec) * time.Second

	referralPercent := getEnvWithDefault("REFERRAL_PERCENT", "5")
	cfg.Promotion.ReferralPercent, err = strconv.ParseFloat(referralPercent, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REFERRAL_PERCENT: %w", err)
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEB_APP_URI", "http://localhost:3000")

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// intEnvWithDefault retrieves an integer environment variable or returns a default
func intEnvWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}
