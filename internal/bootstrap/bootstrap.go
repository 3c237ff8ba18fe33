package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"promopilot/internal/clients/kafka"
	"promopilot/internal/clients/redis"
	"promopilot/internal/config"
	"promopilot/internal/jobs"
	"promopilot/internal/jobs/workers"
	"promopilot/internal/observability"
	promotionHandler "promopilot/internal/promotion/handler"
	promotionProcessor "promopilot/internal/promotion/processor"
	"promopilot/internal/promotion/settings"
	"promopilot/internal/ratelimit"
	"promopilot/internal/referral"
	"promopilot/internal/store"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store       store.Store
	Logger      *observability.Logger
	RedisClient *redis.Client

	// Promotion engine
	Processor        *promotionProcessor.Processor
	PromotionHandler promotionHandler.Handler
	RateLimiter      *ratelimit.Service

	// Background workers
	PromotionWorker   *workers.PromotionWorker
	PublicationWorker *workers.PublicationWorker

	// Clients (for cleanup)
	JobClient     *jobs.Client
	KafkaProducer *kafka.Producer
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Database store
	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis, shared by the article cache, worker throttle and rate limiter
	deps.RedisClient, err = redis.NewClient(cfg.Redis.Addr, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Job queue client
	deps.JobClient = jobs.NewClient(cfg.Redis.Addr, logger)

	// Kafka producer for promotion run events
	brokerList := strings.Split(cfg.Kafka.Brokers, ",")
	deps.KafkaProducer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers: brokerList,
		Topic:   cfg.Kafka.Topic,
	}, logger)

	// Promotion engine
	settingsProvider := settings.New(logger)
	referralAwarder := referral.New(&deps.Store, cfg.Promotion.ReferralPercent, logger)

	deps.Processor = promotionProcessor.NewProcessor(
		&deps.Store,
		settingsProvider,
		deps.JobClient,
		deps.RedisClient,
		deps.KafkaProducer,
		referralAwarder,
		promotionProcessor.Config{
			StuckNodeMaxAge: cfg.Promotion.StuckNodeMaxAge,
			CrowdRetryDelay: cfg.Promotion.CrowdRetryDelay,
		},
		logger,
	)
	deps.PromotionHandler = promotionHandler.New(deps.Processor, logger)
	deps.RateLimiter = ratelimit.NewService(deps.RedisClient, logger)

	// Workers, registered by the worker binary but shared here so both
	// binaries wire them identically
	deps.PromotionWorker = workers.NewPromotionWorker(
		&deps.Store,
		deps.Processor,
		deps.RedisClient,
		cfg.Promotion,
		logger,
	)
	deps.PublicationWorker = workers.NewPublicationWorker(&deps.Store, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.JobClient != nil {
		d.JobClient.Close()
	}
	if d.KafkaProducer != nil {
		d.KafkaProducer.Close()
	}
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
}
