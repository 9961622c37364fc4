package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultLogFile is the per-run diagnostic log, overwritten on every run
const DefaultLogFile = "app.log"

// Config holds runtime settings. Zero values mean defaults: one worker,
// unbounded descriptor cache, no run history database.
type Config struct {
	LogFile   string `yaml:"log_file"`
	Workers   int    `yaml:"workers"`
	CacheSize int    `yaml:"cache_size"` // max cached images, 0 = unbounded
	Database  string `yaml:"database"`   // SQLite path for run history
	Progress  bool   `yaml:"progress"`
}

// Load reads the YAML file at path when one is given and present, then
// applies environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		LogFile: DefaultLogFile,
		Workers: 1,
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("IMAGEDIFFER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	cfg.Workers = envInt("IMAGEDIFFER_WORKERS", cfg.Workers)
	cfg.CacheSize = envInt("IMAGEDIFFER_CACHE_SIZE", cfg.CacheSize)
	if v := os.Getenv("IMAGEDIFFER_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("IMAGEDIFFER_PROGRESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Progress = b
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.CacheSize < 0 {
		cfg.CacheSize = 0
	}
}

// envInt reads an environment variable as a non-negative integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}
