// Package service sequences the extract, transform, and load stages.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"homecare-etl/internal/config"
	"homecare-etl/internal/repository"
	"homecare-etl/internal/source"
	"homecare-etl/internal/transformer"
)

// DatasetStats summarizes one dataset's run.
type DatasetStats struct {
	Read     int
	Kept     int
	Skipped  int
	Inserted int64
	Duration time.Duration
}

// RunReport summarizes a full pipeline run.
type RunReport struct {
	Caregivers DatasetStats
	Carelogs   DatasetStats
}

// PipelineService runs the caregiver and carelog datasets through
// extract → transform → load, caregivers first. The ordering is imposed by
// the carelogs foreign key, not by any extraction constraint.
type PipelineService struct {
	config *config.Config
	logger *zap.Logger
	db     *sql.DB

	source     *source.CSVSource
	schema     *repository.SchemaRepository
	caregivers *repository.CaregiversRepository
	carelogs   *repository.CarelogsRepository

	caregiverTransformer *transformer.CaregiverTransformer
	carelogTransformer   *transformer.CarelogTransformer
}

// NewPipelineService wires the pipeline against an already opened database
// pool. The caller owns the pool's lifecycle.
func NewPipelineService(cfg *config.Config, logger *zap.Logger, db *sql.DB) *PipelineService {
	return &PipelineService{
		config:               cfg,
		logger:               logger,
		db:                   db,
		source:               source.NewCSVSource(logger),
		schema:               repository.NewSchemaRepository(db, logger),
		caregivers:           repository.NewCaregiversRepository(db, logger),
		carelogs:             repository.NewCarelogsRepository(db, logger),
		caregiverTransformer: transformer.NewCaregiverTransformer(logger),
		carelogTransformer:   transformer.NewCarelogTransformer(logger),
	}
}

// Run executes the full pipeline. Row-level data problems are absorbed into
// skip counts; file, schema, and batch-transaction errors abort the run and
// propagate. Caregivers are fully loaded before carelogs begin.
func (s *PipelineService) Run(ctx context.Context) (*RunReport, error) {
	if err := s.schema.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("schema initialization: %w", err)
	}

	report := &RunReport{}

	caregivers, err := s.runCaregivers(ctx)
	if err != nil {
		return nil, err
	}
	report.Caregivers = caregivers

	carelogs, err := s.runCarelogs(ctx)
	if err != nil {
		// Caregivers already committed; hand the partial report back so the
		// orchestrator can still log what landed before the failure.
		return report, err
	}
	report.Carelogs = carelogs

	return report, nil
}

func (s *PipelineService) runCaregivers(ctx context.Context) (DatasetStats, error) {
	start := time.Now()

	rows, err := s.source.ReadRows(s.config.Input.CaregiversPath)
	if err != nil {
		return DatasetStats{}, fmt.Errorf("caregivers extract: %w", err)
	}

	records, skipped := s.caregiverTransformer.Transform(rows)

	inserted, err := s.caregivers.BulkInsert(ctx, records, s.config.Load.BatchSize)
	if err != nil {
		return DatasetStats{}, fmt.Errorf("caregivers load: %w", err)
	}

	stats := DatasetStats{
		Read:     len(rows),
		Kept:     len(records),
		Skipped:  skipped,
		Inserted: inserted,
		Duration: time.Since(start),
	}
	s.logStats("caregivers", stats)
	return stats, nil
}

func (s *PipelineService) runCarelogs(ctx context.Context) (DatasetStats, error) {
	start := time.Now()

	rows, err := s.source.ReadRows(s.config.Input.CarelogsPath)
	if err != nil {
		return DatasetStats{}, fmt.Errorf("carelogs extract: %w", err)
	}

	records, skipped := s.carelogTransformer.Transform(rows)

	inserted, err := s.carelogs.BulkInsert(ctx, records, s.config.Load.BatchSize)
	if err != nil {
		return DatasetStats{}, fmt.Errorf("carelogs load: %w", err)
	}

	stats := DatasetStats{
		Read:     len(rows),
		Kept:     len(records),
		Skipped:  skipped,
		Inserted: inserted,
		Duration: time.Since(start),
	}
	s.logStats("carelogs", stats)
	return stats, nil
}

func (s *PipelineService) logStats(dataset string, stats DatasetStats) {
	s.logger.Info("dataset loaded",
		zap.String("dataset", dataset),
		zap.Int("read", stats.Read),
		zap.Int("kept", stats.Kept),
		zap.Int("skipped", stats.Skipped),
		zap.Int64("inserted", stats.Inserted),
		zap.Duration("duration", stats.Duration),
	)
}
