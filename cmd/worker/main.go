package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/risk-map-service/internal/config"
	"github.com/risk-map-service/internal/domain/repository"
	"github.com/risk-map-service/internal/observability"
	"github.com/risk-map-service/internal/pkg/logger"
	"github.com/risk-map-service/internal/render"
	"github.com/risk-map-service/internal/repository/cache"
	"github.com/risk-map-service/internal/repository/postgres"
	redisRepo "github.com/risk-map-service/internal/repository/redis"
	"github.com/risk-map-service/internal/repository/source"
	"github.com/risk-map-service/internal/usecase"
	"github.com/risk-map-service/internal/worker"
	"github.com/risk-map-service/internal/worker/command"
	"go.uber.org/zap"
)

// Отдельный процесс без HTTP: держит свою копию карты, применяет команды
// из стрима и публикует события с результатами сопоставления.
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Risk Map Command Worker",
		zap.String("command_stream", cfg.Worker.CommandStream),
		zap.String("consumer_group", cfg.Worker.StandaloneGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// 3. Sources
	var db *postgres.DB
	var boundarySource repository.BoundarySource
	if cfg.Data.BoundarySource == config.BoundarySourcePostgres {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		boundarySource = postgres.NewBoundaryRepository(db, cfg.Data.BoundaryAdminLevel)
	} else {
		boundarySource = source.NewGeoJSONSource(cfg.Data.BoundaryPath, cfg.Data.FetchTimeout, log)
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	publisher := redisRepo.NewEventPublisher(streamRepo, cfg.Worker.EventStream)

	// 5. Use cases
	binding := usecase.NewMapBinding(clock, log)
	loader := usecase.NewMapLoader(
		boundarySource,
		source.NewCSVSource(cfg.Data.RiskTablePath, cfg.Data.FetchTimeout, log),
		binding,
		func() usecase.Renderer { return render.NewLayer() },
		metrics,
		log,
	)
	riskMapUC := usecase.NewRiskMapUseCase(binding, nil, publisher, metrics, clock, usecase.RiskMapConfig{}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Команды до окончания загрузки повторяются воркером
	go loader.Load(ctx)

	// 6. Worker manager
	workerManager := worker.NewWorkerManager(cfg.Worker.ShutdownTimeout, log)
	workerManager.Register(command.NewCommandWorker(streamRepo, riskMapUC, metrics, command.Config{
		Stream:        cfg.Worker.CommandStream,
		ConsumerGroup: cfg.Worker.StandaloneGroup,
		ConsumerName:  cfg.Worker.ConsumerName,
		MaxRetries:    cfg.Worker.MaxRetries,
		RetryDelay:    cfg.Worker.RetryDelay,
	}, log))

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
