// cmd/bizlenz-worker/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BizLenz/api/internal/infrastructure/connector"
	"github.com/BizLenz/api/internal/infrastructure/persistence"
	"github.com/BizLenz/api/internal/infrastructure/queue"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"
	"github.com/BizLenz/api/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/worker.yaml"
	}

	workerConfig, err := config.InitializeWorkerConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&workerConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := persistence.NewDBConnection(workerConfig.Database)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer func() {
		_ = persistence.CloseDB(db)
	}()

	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Initialize repositories
	planRepo, err := persistence.NewGormPlanRepository(db, log)
	if err != nil {
		return fmt.Errorf("failed to create plan repository: %w", err)
	}

	jobRepo, err := persistence.NewGormJobRepository(db, log)
	if err != nil {
		return fmt.Errorf("failed to create job repository: %w", err)
	}

	resultRepo, err := persistence.NewGormResultRepository(db, log)
	if err != nil {
		return fmt.Errorf("failed to create result repository: %w", err)
	}

	// Initialize S3 and the evaluation engine client
	objectStore, err := connector.NewS3Connector(ctx, &workerConfig.S3, log)
	if err != nil {
		return fmt.Errorf("failed to create S3 connector: %w", err)
	}

	analyzer, err := worker.NewHTTPAnalyzer(workerConfig.Worker.AnalyzerURL, log)
	if err != nil {
		return fmt.Errorf("failed to create analyzer client: %w", err)
	}

	runner, err := worker.NewRunner(planRepo, jobRepo, resultRepo, objectStore, analyzer, &workerConfig.Worker, log)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	// Start the archival sweep
	archiver, err := worker.NewArchiver(resultRepo, jobRepo, planRepo, objectStore, &workerConfig.Worker, &workerConfig.S3, log)
	if err != nil {
		return fmt.Errorf("failed to create archiver: %w", err)
	}
	if err := archiver.Start(ctx); err != nil {
		return fmt.Errorf("failed to start archiver: %w", err)
	}
	defer archiver.Stop()

	// Start consuming analysis requests
	consumer, err := queue.NewRabbitConsumer(&workerConfig.Queue, log)
	if err != nil {
		return fmt.Errorf("failed to create queue consumer: %w", err)
	}
	defer consumer.Close()

	consumerErrors := make(chan error, 1)
	go func() {
		consumerErrors <- consumer.Consume(ctx, runner.HandleRequest)
	}()

	log.Info("Worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("consumer stopped: %w", err)
		}
	case sig := <-quit:
		log.Info("Received signal ", sig, ", shutting down worker")
		cancel()
		<-consumerErrors
	}

	log.Info("Worker stopped gracefully")
	return nil
}
