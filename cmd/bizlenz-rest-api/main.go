// cmd/bizlenz-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/BizLenz/api/internal/api/rest/v1"
	"github.com/BizLenz/api/internal/app"
	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/auth"
	"github.com/BizLenz/api/internal/domain/plans"
	"github.com/BizLenz/api/internal/infrastructure/connector"
	"github.com/BizLenz/api/internal/infrastructure/identity"
	"github.com/BizLenz/api/internal/infrastructure/persistence"
	"github.com/BizLenz/api/internal/infrastructure/queue"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
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
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	verifier       auth.TokenVerifier
	planUpload     plans.PlanUploadService
	planMetadata   plans.PlanMetadataService
	planDownload   plans.PlanDownloadService
	evaluation     analyses.EvaluationService
	auth           app.AuthService
	profile        app.UserProfileService
	closePublisher func()
}

func (d *appDependencies) close() {
	if d.closePublisher != nil {
		d.closePublisher()
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	ctx := context.Background()

	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	planRepo, err := persistence.NewGormPlanRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan repository: %w", err)
	}

	jobRepo, err := persistence.NewGormJobRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create job repository: %w", err)
	}

	resultRepo, err := persistence.NewGormResultRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create result repository: %w", err)
	}

	evaluationStore, err := persistence.NewGormEvaluationStore(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation store: %w", err)
	}

	// Initialize AWS connectors
	objectStore, err := connector.NewS3Connector(ctx, &cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 connector: %w", err)
	}

	identityProvider, err := connector.NewCognitoConnector(ctx, &cfg.Cognito, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cognito connector: %w", err)
	}

	keys, err := identity.NewCachedKeySetProvider(ctx, cfg.Cognito.JWKSURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS provider: %w", err)
	}

	verifier, err := identity.NewJWKSVerifier(keys, &cfg.Cognito, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	// Initialize queue publisher
	publisher, closePublisher, err := queue.NewRabbitPublisher(&cfg.Queue, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue publisher: %w", err)
	}

	// Initialize services
	planUpload, err := app.NewPlanUploadService(planRepo, userRepo, objectStore, publisher, &cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan upload service: %w", err)
	}

	planMetadata, err := app.NewPlanMetadataService(planRepo, objectStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan metadata service: %w", err)
	}

	planDownload, err := app.NewPlanDownloadService(planRepo, objectStore, &cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan download service: %w", err)
	}

	evaluation, err := app.NewEvaluationService(evaluationStore, jobRepo, resultRepo, planRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation service: %w", err)
	}

	authService, err := app.NewAuthService(identityProvider, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	profile, err := app.NewUserProfileService(userRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user profile service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		verifier:       verifier,
		planUpload:     planUpload,
		planMetadata:   planMetadata,
		planDownload:   planDownload,
		evaluation:     evaluation,
		auth:           authService,
		profile:        profile,
		closePublisher: closePublisher,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.verifier,
		deps.planUpload,
		deps.planMetadata,
		deps.planDownload,
		deps.evaluation,
		deps.auth,
		deps.profile,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
