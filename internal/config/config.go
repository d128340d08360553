package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/aetheria/internal/engine"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/storage"
	"github.com/tatianab/aetheria/internal/storage/filestore"
)

// Config holds the application configuration.
//
// Values are layered: built-in defaults, then the YAML file (if any), then
// the environment (including a .env file in the working directory).
type Config struct {
	GeminiAPIKey  string `yaml:"-" env:"GEMINI_API_KEY"`
	Model         string `yaml:"model" env:"AETHERIA_MODEL"`
	HistoryWindow int    `yaml:"history_window" env:"AETHERIA_HISTORY_WINDOW"`

	Backend     storage.Backend `yaml:"backend" env:"AETHERIA_BACKEND"`
	SaveKey     string          `yaml:"save_key" env:"AETHERIA_SAVE_KEY"`
	SaveDir     string          `yaml:"save_dir" env:"AETHERIA_SAVE_DIR"`
	RedisAddr   string          `yaml:"redis_addr" env:"AETHERIA_REDIS_ADDR"`
	SQLitePath  string          `yaml:"sqlite_path" env:"AETHERIA_SQLITE_PATH"`
	SupabaseURL string          `yaml:"supabase_url" env:"SUPABASE_URL"`
	SupabaseKey string          `yaml:"-" env:"SUPABASE_KEY"`

	LogFile  string `yaml:"log_file" env:"AETHERIA_LOG_FILE"`
	LogLevel string `yaml:"log_level" env:"AETHERIA_LOG_LEVEL"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Model:         engine.DefaultModel,
		HistoryWindow: engine.DefaultHistoryWindow,
		Backend:       storage.BackendFile,
		SaveKey:       models.DefaultSaveKey,
		SaveDir:       filestore.DefaultDir,
		SQLitePath:    "aetheria.db",
		LogFile:       "aetheria.log",
		LogLevel:      "info",
	}
}

// LoadConfig builds the configuration. path may be empty.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// A missing .env file is normal.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RequireAPIKey reports whether the Gemini key is set.
func (c *Config) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

// StorageOptions converts the config into store options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     c.Backend,
		Key:         c.SaveKey,
		Dir:         c.SaveDir,
		RedisAddr:   c.RedisAddr,
		SQLitePath:  c.SQLitePath,
		SupabaseURL: c.SupabaseURL,
		SupabaseKey: c.SupabaseKey,
	}
}

// EngineOptions converts the config into engine options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Model:         c.Model,
		HistoryWindow: c.HistoryWindow,
	}
}
