package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"homecare-etl/internal/config"
)

const caregiversCSV = `profile_id,caregiver_id,franchisor_id,agency_id,first_name,locations_id,applicant,status
p-1,cg-1,fr-1,ag-1,Ada,7,True,active
,cg-2,fr-1,ag-1,NoProfile,0,False,active
p-3,cg-3,fr-1,ag-1,Grace,0,maybe,inactive
`

const carelogsCSV = `carelog_id,caregiver_id,franchisor_id,agency_id,start_datetime,end_datetime,clock_in_actual_datetime
cl-1,cg-1,fr-1,ag-1,2023-06-01 09:00:00,2023-06-01 17:00:00,2023-06-01 09:02:00
cl-2,cg-1,fr-1,ag-1,2023-06-02 09:00:00,,
cl-3,cg-3,fr-1,ag-1,2023-06-03 09:00:00,2023-06-03 17:00:00,None
cl-4,cg-3,fr-1,ag-1,2023-06-04 09:00:00,2023-06-04 17:00:00,2023-06-04 09:00:00
cl-5,cg-1,fr-1,ag-1,2023-06-05 09:00:00,2023-06-05 17:00:00,
`

func writeInputFiles(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cgPath := filepath.Join(dir, "caregivers.csv")
	require.NoError(t, os.WriteFile(cgPath, []byte(caregiversCSV), 0o644))
	clPath := filepath.Join(dir, "carelogs.csv")
	require.NoError(t, os.WriteFile(clPath, []byte(carelogsCSV), 0o644))

	cfg := &config.Config{}
	cfg.Input.CaregiversPath = cgPath
	cfg.Input.CarelogsPath = clPath
	cfg.Load.BatchSize = 1000
	return cfg
}

func TestPipelineRun_EndToEnd(t *testing.T) {
	cfg := writeInputFiles(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS caregivers`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS carelogs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Caregivers load first: 3 rows read, the empty profile_id row skipped.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO caregivers`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	// Then carelogs: 5 rows read, the blank end_datetime row skipped.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO carelogs`).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	pipeline := NewPipelineService(cfg, zap.NewNop(), db)
	report, err := pipeline.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 3, report.Caregivers.Read)
	assert.Equal(t, 2, report.Caregivers.Kept)
	assert.Equal(t, 1, report.Caregivers.Skipped)
	assert.Equal(t, int64(2), report.Caregivers.Inserted)
	assert.Equal(t, report.Caregivers.Read, report.Caregivers.Kept+report.Caregivers.Skipped)

	assert.Equal(t, 5, report.Carelogs.Read)
	assert.Equal(t, 4, report.Carelogs.Kept)
	assert.Equal(t, 1, report.Carelogs.Skipped)
	assert.Equal(t, int64(4), report.Carelogs.Inserted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRun_SchemaErrorAbortsBeforeLoad(t *testing.T) {
	cfg := writeInputFiles(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS caregivers`).
		WillReturnError(errors.New("permission denied"))

	pipeline := NewPipelineService(cfg, zap.NewNop(), db)
	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "schema initialization")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRun_MissingSourceFileIsFatal(t *testing.T) {
	cfg := writeInputFiles(t)
	cfg.Input.CaregiversPath = filepath.Join(t.TempDir(), "missing.csv")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS caregivers`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS carelogs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	pipeline := NewPipelineService(cfg, zap.NewNop(), db)
	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "caregivers extract")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRun_CarelogLoadErrorAfterCaregivers(t *testing.T) {
	cfg := writeInputFiles(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS caregivers`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS carelogs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO caregivers`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO carelogs`).
		WillReturnError(errors.New(`pq: insert or update on table "carelogs" violates foreign key constraint`))
	mock.ExpectRollback()

	pipeline := NewPipelineService(cfg, zap.NewNop(), db)
	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "carelogs load")

	// The caregivers stage committed before the failure; its stats survive
	// in the partial report.
	require.NotNil(t, report)
	assert.Equal(t, 3, report.Caregivers.Read)
	assert.Equal(t, 2, report.Caregivers.Kept)
	assert.Equal(t, int64(2), report.Caregivers.Inserted)
	assert.Zero(t, report.Carelogs)

	require.NoError(t, mock.ExpectationsWereMet())
}
