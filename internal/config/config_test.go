package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "postgres", cfg.Database.Password)
	assert.Equal(t, "homecare", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 5, cfg.Database.MaxIdle)

	assert.Equal(t, "data/caregivers.csv", cfg.Input.CaregiversPath)
	assert.Equal(t, "data/carelogs.csv", cfg.Input.CarelogsPath)
	assert.Equal(t, 1000, cfg.Load.BatchSize)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_USER", "test-user")
	os.Setenv("DB_PASSWORD", "test-password")
	os.Setenv("DB_NAME", "test-db")
	os.Setenv("CAREGIVERS_CSV", "/tmp/cg.csv")
	os.Setenv("CARELOGS_CSV", "/tmp/cl.csv")
	os.Setenv("LOAD_BATCH_SIZE", "250")
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "test-user", cfg.Database.User)
	assert.Equal(t, "test-password", cfg.Database.Password)
	assert.Equal(t, "test-db", cfg.Database.Database)

	assert.Equal(t, "/tmp/cg.csv", cfg.Input.CaregiversPath)
	assert.Equal(t, "/tmp/cl.csv", cfg.Input.CarelogsPath)
	assert.Equal(t, 250, cfg.Load.BatchSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PORT", "not-a-port")
	os.Setenv("LOAD_BATCH_SIZE", "many")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 1000, cfg.Load.BatchSize)
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "etl",
		Password: "secret",
		Database: "homecare",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=etl password=secret dbname=homecare sslmode=require",
		cfg.GetDSN(),
	)
}
