package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5432"
	cfg.Database.User = "tracker"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "syllabus_tracker"
	cfg.Database.MaxOpenConns = 8
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = "30m"
	return cfg
}

func TestPoolConfig(t *testing.T) {
	pc, err := PoolConfig(testConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 30*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.BeforeAcquire)
}

func TestPoolConfigClampsConnections(t *testing.T) {
	cfg := testConfig()
	cfg.Database.MaxOpenConns = 0
	cfg.Database.MaxIdleConns = 50
	cfg.Database.ConnMaxLifetime = ""

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
	assert.Equal(t, int32(defaultMaxConns), pc.MinConns)
	assert.Equal(t, defaultMaxLifetime, pc.MaxConnLifetime)
}

func TestPoolConfigRejectsBadLifetime(t *testing.T) {
	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"
	_, err := PoolConfig(cfg)
	assert.Error(t, err)
}

func TestHealthWithoutPool(t *testing.T) {
	var d *PostgresDB
	assert.Error(t, d.Health(context.Background()))
}
