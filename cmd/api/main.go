package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/feedback-tracker/backend/internal/config"
	"github.com/feedback-tracker/backend/internal/db"
	"github.com/feedback-tracker/backend/internal/events"
	apphttp "github.com/feedback-tracker/backend/internal/http"
	"github.com/feedback-tracker/backend/internal/http/handlers"
	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/repositories"
	"github.com/feedback-tracker/backend/internal/services"
	"github.com/feedback-tracker/backend/internal/validation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title Feedback Tracker API
// @version 1.0
// @description Feedback CRUD with activity and API request logs.
// @BasePath /api
func main() {
	cfg := config.Load()

	log := newLogger(cfg)
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.DBMaxConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis is optional
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Warn("redis unavailable, rate limiting and live feed disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	m := metrics.New()

	// Repositories
	feedbackRepo := repositories.NewFeedbackRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)
	apiRequestRepo := repositories.NewAPIRequestRepo(pool)

	// Events
	var publisher events.Publisher = events.NopPublisher{}
	var wsHub *handlers.WSHub
	if rdb != nil {
		publisher = events.NewRedisPublisher(rdb, log)
		wsHub = handlers.NewWSHub(events.NewRedisSubscriber(rdb, log), log)
		if err := wsHub.Start(ctx); err != nil {
			log.Warn("live activity feed disabled", zap.Error(err))
			wsHub = nil
		}
	}

	// Services
	activityRecorder := services.NewActivityRecorder(activityRepo, publisher, m, log)
	traceRecorder := services.NewTraceRecorder(apiRequestRepo, m, cfg.TraceWriteTimeout, log)
	feedbackService := services.NewFeedbackService(feedbackRepo, activityRecorder, m, log)

	// Handlers
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, log)
	logHandler := handlers.NewLogHandler(activityRepo, apiRequestRepo, log)
	metaHandler := handlers.NewMetaHandler()

	app := apphttp.NewApp(log)
	apphttp.SetupRouter(app, cfg, log, rdb, m, traceRecorder, validation.New(cfg.StrictCatalog),
		feedbackHandler, logHandler, metaHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.Warn("shutdown timed out", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server",
		zap.String("addr", addr),
		zap.String("prefix", cfg.APIPrefix),
		zap.Bool("strict_catalog", cfg.StrictCatalog),
		zap.Bool("redis", rdb != nil),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}

	// Pending api request log writes still hold pool connections.
	traceRecorder.Wait()
	activityRecorder.Wait()
	log.Info("stopped")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsDevelopment() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	return log
}
