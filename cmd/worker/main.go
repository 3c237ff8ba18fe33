package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promopilot/internal/bootstrap"
	"promopilot/internal/config"
	"promopilot/internal/jobs"
	"promopilot/internal/jobs/scheduler"
	schedulerJobs "promopilot/internal/jobs/scheduler/jobs"
	"promopilot/internal/observability"

	"github.com/hibiken/asynq"
)

func main() {
	logger := observability.NewLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info(ctx, "Starting promotion worker server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %s", err)
	}
	defer deps.Cleanup()

	// Create Asynq server with queue configuration
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Addr},
		asynq.Config{
			Concurrency: 20,
			Queues: map[string]int{
				jobs.QueueHigh:   10,
				jobs.QueueMedium: 5,
				jobs.QueueLow:    2,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(ctx, fmt.Sprintf("task %s failed", task.Type()), err)
			}),
			RetryDelayFunc: asynq.DefaultRetryDelayFunc,
		},
	)

	// Create task handler (mux)
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypePromotionProcess, deps.PromotionWorker.ProcessPromotionTask)
	mux.HandleFunc(jobs.TypeCrowdExecute, deps.PromotionWorker.ProcessCrowdTask)
	mux.HandleFunc(jobs.TypePublicationExecute, deps.PublicationWorker.ProcessPublicationTask)

	// Periodic sweep so runs survive lost wake-up tasks
	sched := scheduler.New(logger)
	sched.Register(schedulerJobs.NewPromotionSweepJob(deps.JobClient, logger, 1*time.Minute))
	go sched.Start(ctx)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		logger.Info(ctx, fmt.Sprintf("Worker server started on Redis: %s", cfg.Redis.Addr))
		if err := srv.Run(mux); err != nil {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info(ctx, "Shutting down worker server...")

	cancel()
	srv.Shutdown()
	logger.Info(ctx, "Worker server stopped")
}
