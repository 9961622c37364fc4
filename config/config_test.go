package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, 1, cfg.Workers)
	assert.Zero(t, cfg.CacheSize)
	assert.Empty(t, cfg.Database)
	assert.False(t, cfg.Progress)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "log_file: run.log\nworkers: 3\ncache_size: 500\ndatabase: history.db\nprogress: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		LogFile:   "run.log",
		Workers:   3,
		CacheSize: 500,
		Database:  "history.db",
		Progress:  true,
	}, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3\nlog_file: run.log\n"), 0o644))

	t.Setenv("IMAGEDIFFER_WORKERS", "6")
	t.Setenv("IMAGEDIFFER_LOG_FILE", "env.log")
	t.Setenv("IMAGEDIFFER_CACHE_SIZE", "not-a-number")
	t.Setenv("IMAGEDIFFER_DATABASE", "env.db")
	t.Setenv("IMAGEDIFFER_PROGRESS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "env.log", cfg.LogFile)
	assert.Zero(t, cfg.CacheSize, "invalid value keeps the default")
	assert.Equal(t, "env.db", cfg.Database)
	assert.True(t, cfg.Progress)
}

func TestLoad_ClampsNonsense(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -2\ncache_size: -1\nlog_file: \"\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Workers)
	assert.Zero(t, cfg.CacheSize)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}
