package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"homecare-etl/internal/models"
)

const caregiverColumns = 18

// CaregiversRepository loads caregiver records into the caregivers table.
type CaregiversRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCaregiversRepository creates a caregivers repository.
func NewCaregiversRepository(db *sql.DB, logger *zap.Logger) *CaregiversRepository {
	return &CaregiversRepository{db: db, logger: logger}
}

// BulkInsert writes records in contiguous batches, one transaction per
// batch, using a multi-row insert with ON CONFLICT (profile_id) DO NOTHING.
// An existing profile_id wins silently, which is what makes re-runs no-ops.
// Any other failure rolls the batch back and propagates; a multi-row
// statement has no sub-row granularity, so there is no per-row recovery.
// Returns the number of rows actually inserted.
func (r *CaregiversRepository) BulkInsert(ctx context.Context, records []models.Caregiver, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var inserted int64
	for i, batch := range chunk(records, batchSize) {
		n, err := r.insertBatch(ctx, batch)
		if err != nil {
			return inserted, fmt.Errorf("caregivers batch %d: %w", i, err)
		}
		inserted += n
		r.logger.Debug("loaded caregiver batch",
			zap.Int("batch", i),
			zap.Int("size", len(batch)),
			zap.Int64("inserted", n),
		)
	}

	return inserted, nil
}

func (r *CaregiversRepository) insertBatch(ctx context.Context, batch []models.Caregiver) (int64, error) {
	query := `
		INSERT INTO caregivers (
			profile_id, caregiver_id, franchisor_id, agency_id,
			subdomain, external_id, first_name, last_name,
			email, phone_number, gender, applicant,
			birthday_date, onboarding_date, location_name, locations_id,
			applicant_status, status
		) VALUES ` + placeholderRows(len(batch), caregiverColumns) + `
		ON CONFLICT (profile_id) DO NOTHING`

	args := make([]any, 0, len(batch)*caregiverColumns)
	for _, c := range batch {
		args = append(args,
			c.ProfileID, c.CaregiverID, c.FranchisorID, c.AgencyID,
			c.Subdomain, c.ExternalID, c.FirstName, c.LastName,
			c.Email, c.PhoneNumber, c.Gender, c.Applicant,
			c.BirthdayDate, c.OnboardingDate, c.LocationName, c.LocationsID,
			c.ApplicantStatus, c.Status,
		)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to insert caregivers: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit caregivers batch: %w", err)
	}

	return n, nil
}
