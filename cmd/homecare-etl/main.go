package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"homecare-etl/internal/config"
	"homecare-etl/internal/database"
	"homecare-etl/internal/logger"
	"homecare-etl/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "homecare-etl")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting homecare-etl",
		zap.String("caregivers_csv", cfg.Input.CaregiversPath),
		zap.String("carelogs_csv", cfg.Input.CarelogsPath),
		zap.Int("batch_size", cfg.Load.BatchSize),
	)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline := service.NewPipelineService(cfg, zapLogger, db)

	report, err := pipeline.Run(ctx)
	if err != nil {
		zapLogger.Error("Pipeline run failed", zap.Error(err))
		if report != nil {
			zapLogger.Info("Partial results before failure",
				zap.Int("caregivers_read", report.Caregivers.Read),
				zap.Int("caregivers_kept", report.Caregivers.Kept),
				zap.Int64("caregivers_inserted", report.Caregivers.Inserted),
			)
		}
		database.Close(db)
		zapLogger.Sync()
		os.Exit(1)
	}

	zapLogger.Info("Pipeline run completed",
		zap.Int("caregivers_read", report.Caregivers.Read),
		zap.Int("caregivers_kept", report.Caregivers.Kept),
		zap.Int64("caregivers_inserted", report.Caregivers.Inserted),
		zap.Int("carelogs_read", report.Carelogs.Read),
		zap.Int("carelogs_kept", report.Carelogs.Kept),
		zap.Int64("carelogs_inserted", report.Carelogs.Inserted),
	)
}
