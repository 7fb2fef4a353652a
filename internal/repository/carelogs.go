package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"homecare-etl/internal/models"
)

const carelogColumns = 15

// CarelogsRepository loads care-visit records into the carelogs table.
//
// carelogs.caregiver_id carries a foreign key to caregivers(caregiver_id),
// so the caregivers load must be fully committed before any carelog batch
// runs; the pipeline service enforces that ordering.
type CarelogsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCarelogsRepository creates a carelogs repository.
func NewCarelogsRepository(db *sql.DB, logger *zap.Logger) *CarelogsRepository {
	return &CarelogsRepository{db: db, logger: logger}
}

// BulkInsert writes records in contiguous batches, one transaction per
// batch, with ON CONFLICT (carelog_id) DO NOTHING. A foreign-key or
// NOT NULL violation rolls the whole batch back and aborts the run;
// previously committed batches remain intact. Returns the number of rows
// actually inserted.
func (r *CarelogsRepository) BulkInsert(ctx context.Context, records []models.Carelog, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var inserted int64
	for i, batch := range chunk(records, batchSize) {
		n, err := r.insertBatch(ctx, batch)
		if err != nil {
			return inserted, fmt.Errorf("carelogs batch %d: %w", i, err)
		}
		inserted += n
		r.logger.Debug("loaded carelog batch",
			zap.Int("batch", i),
			zap.Int("size", len(batch)),
			zap.Int64("inserted", n),
		)
	}

	return inserted, nil
}

func (r *CarelogsRepository) insertBatch(ctx context.Context, batch []models.Carelog) (int64, error) {
	query := `
		INSERT INTO carelogs (
			carelog_id, caregiver_id, franchisor_id, agency_id,
			start_datetime, end_datetime,
			clock_in_actual_datetime, clock_out_actual_datetime,
			clock_in_method, clock_out_method, status, split,
			parent_id, documentation, general_comment_char_count
		) VALUES ` + placeholderRows(len(batch), carelogColumns) + `
		ON CONFLICT (carelog_id) DO NOTHING`

	args := make([]any, 0, len(batch)*carelogColumns)
	for _, c := range batch {
		args = append(args,
			c.CarelogID, c.CaregiverID, c.FranchisorID, c.AgencyID,
			c.StartDatetime, c.EndDatetime,
			c.ClockInActualDatetime, c.ClockOutActualDatetime,
			c.ClockInMethod, c.ClockOutMethod, c.Status, c.Split,
			c.ParentID, c.Documentation, c.GeneralCommentCharCount,
		)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to insert carelogs: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit carelogs batch: %w", err)
	}

	return n, nil
}
