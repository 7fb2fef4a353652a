package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// createCaregiversTable and createCarelogsTable are create-if-absent only;
// schema initialization never drops or alters existing tables.
const createCaregiversTable = `
	CREATE TABLE IF NOT EXISTS caregivers (
		profile_id TEXT PRIMARY KEY,
		caregiver_id TEXT NOT NULL UNIQUE,
		franchisor_id TEXT NOT NULL,
		agency_id TEXT NOT NULL,
		subdomain TEXT,
		external_id TEXT,
		first_name TEXT,
		last_name TEXT,
		email TEXT,
		phone_number TEXT,
		gender TEXT,
		applicant BOOLEAN,
		birthday_date TIMESTAMP,
		onboarding_date TIMESTAMP,
		location_name TEXT,
		locations_id INTEGER,
		applicant_status TEXT,
		status TEXT NOT NULL
	)
`

const createCarelogsTable = `
	CREATE TABLE IF NOT EXISTS carelogs (
		carelog_id TEXT PRIMARY KEY,
		caregiver_id TEXT NOT NULL REFERENCES caregivers(caregiver_id),
		franchisor_id TEXT NOT NULL,
		agency_id TEXT NOT NULL,
		start_datetime TIMESTAMP NOT NULL,
		end_datetime TIMESTAMP NOT NULL,
		clock_in_actual_datetime TIMESTAMP,
		clock_out_actual_datetime TIMESTAMP,
		clock_in_method INTEGER,
		clock_out_method INTEGER,
		status INTEGER,
		split BOOLEAN,
		parent_id TEXT,
		documentation TEXT,
		general_comment_char_count INTEGER
	)
`

// SchemaRepository ensures the target tables exist before loading.
type SchemaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSchemaRepository creates a schema repository.
func NewSchemaRepository(db *sql.DB, logger *zap.Logger) *SchemaRepository {
	return &SchemaRepository{db: db, logger: logger}
}

// EnsureSchema idempotently creates both tables with their constraints.
// caregivers must exist before carelogs: the carelogs foreign key references
// caregivers(caregiver_id). Any failure here is fatal for the run.
func (r *SchemaRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCaregiversTable); err != nil {
		return fmt.Errorf("failed to create caregivers table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createCarelogsTable); err != nil {
		return fmt.Errorf("failed to create carelogs table: %w", err)
	}

	r.logger.Info("schema ensured")
	return nil
}
