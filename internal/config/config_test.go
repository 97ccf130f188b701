package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadFrom(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg, err := load(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, time.Sunday, cfg.FirstWeekday)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, filepath.Join("/home/tester", ".punchcard", "punchcard.db"), cfg.DBPath)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"PUNCHCARD_DB":            "/tmp/p.bolt",
		"PUNCHCARD_BACKEND":       "Bolt",
		"PUNCHCARD_EXPORT_DIR":    "/tmp/exports",
		"PUNCHCARD_WEEK_START":    "monday",
		"PUNCHCARD_LOG_USE_CASES": "true",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/p.bolt", cfg.DBPath)
	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, time.Monday, cfg.FirstWeekday)
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_IgnoresUnprefixedNames(t *testing.T) {
	cfg, err := load(t, map[string]string{"BACKEND": "bolt", "PUNCHCARD_DB": "/tmp/p.db"})
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoad_InvalidBackend(t *testing.T) {
	_, err := load(t, map[string]string{"PUNCHCARD_BACKEND": "redis", "PUNCHCARD_DB": "/tmp/p.db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND")
}

func TestLoad_InvalidWeekStart(t *testing.T) {
	_, err := load(t, map[string]string{"PUNCHCARD_WEEK_START": "someday", "PUNCHCARD_DB": "/tmp/p.db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEEK_START")
}

func TestDefaultDBPath_Bolt(t *testing.T) {
	assert.Equal(t, filepath.Join("/h", ".punchcard", "punchcard.bolt"), DefaultDBPath("/h", BackendBolt))
}
