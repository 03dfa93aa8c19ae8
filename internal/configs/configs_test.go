package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "task-service.com/task-service/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL())
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "redis", cfg.QueueDriver)
	assert.Equal(t, "tasks_queue", cfg.QueueName)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr())
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, 3*time.Second, cfg.ProcessingDelay)
	assert.Zero(t, cfg.RedeliveryInterval)
	assert.Equal(t, time.Minute, cfg.RedeliveryAge)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=tasks dbname=tasks sslmode=disable")
	t.Setenv("QUEUE_DRIVER", "nats")
	t.Setenv("TASK_WORKERS", "12")
	t.Setenv("TASK_PROCESSING_DELAY", "250ms")
	t.Setenv("TASK_REDELIVERY_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "nats", cfg.QueueDriver)
	assert.Equal(t, 12, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.ProcessingDelay)
	assert.Equal(t, 30*time.Second, cfg.RedeliveryInterval)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"unknown database": {"DATABASE_DRIVER", "mysql"},
		"unknown queue":    {"QUEUE_DRIVER", "kafka"},
		"zero workers":     {"TASK_WORKERS", "0"},
		"bad log level":    {"LOG_LEVEL", "verbose"},
		"bad duration":     {"SHUTDOWN_TIMEOUT", "soon"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept", "task_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, float64(7), line["task_id"])
	assert.Same(t, logger, slog.Default())
}

func TestNewDatabaseClient_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tasks.db")

	db, err := NewDatabaseClient("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	assert.True(t, db.Migrator().HasTable(&model.Task{}))
	assert.True(t, db.Migrator().HasIndex(&model.Task{}, "ix_tasks_status"))
}

func TestNewDatabaseClient_UnknownDriver(t *testing.T) {
	_, err := NewDatabaseClient("oracle", "")
	assert.Error(t, err)
}
