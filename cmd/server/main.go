package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/config"
	v1 "github.com/dmehra2102/prod-golang-projects/medcanvas/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/platform/llm"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/platform/tavily"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/retry"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/tracer"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer zl.Sync()

	if cfg.Evidence.APIKey == "" {
		zl.Warn("TAVILY_API_KEY is not set; diagnosis requests will fail with a configuration error")
	}
	if cfg.Generation.APIKey == "" {
		zl.Warn("OPENAI_API_KEY is not set; diagnosis requests will fail with a configuration error")
	}

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		zl.Fatal("initializing tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			zl.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	collector := metrics.NewCollector("medcanvas")

	searcher := tavily.NewClient(cfg.Evidence, zl.Named("tavily"))
	generator := llm.NewGenerator(cfg.Generation, zl.Named("llm"))
	retryPolicy := retry.NewPolicy(cfg.Pipeline.MaxAttempts, time.Second)

	diagnosisSvc := service.NewDiagnosisService(searcher, generator, retryPolicy, collector, zl.Named("diagnosis"))
	handler := v1.NewDiagnosisHandler(diagnosisSvc, cfg.Pipeline.Timeout, zl.Named("handler"))

	router := v1.NewRouter(cfg, handler, collector, zl.Named("http"))

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zl.Info("server starting",
			zap.String("address", cfg.Server.Address()),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}
