package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLAIMTRACK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("CLAIMTRACK_DB", "")
	t.Setenv("CLAIMTRACK_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DBPath, ".claimtrack")
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Empty(t, cfg.DefaultEstimator)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_path: /tmp/claims.db\ndefault_estimator: dvo\nlog_level: debug\nno_color: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CLAIMTRACK_CONFIG", path)
	t.Setenv("CLAIMTRACK_DB", "")
	t.Setenv("CLAIMTRACK_ESTIMATOR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/claims.db", cfg.DBPath)
	assert.Equal(t, "dvo", cfg.DefaultEstimator)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.True(t, cfg.NoColor)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/from-file.db\n"), 0o644))
	t.Setenv("CLAIMTRACK_CONFIG", path)
	t.Setenv("CLAIMTRACK_DB", "/tmp/from-env.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed"), 0o644))
	t.Setenv("CLAIMTRACK_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestSetupLoggerWithWriters_FansOut(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("estimate moved", "estimate_id", "abc")

	assert.Contains(t, stderr.String(), "estimate moved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "estimate moved", entry["msg"])
	assert.Equal(t, "abc", entry["estimate_id"])
}
