package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownSecs    int    `yaml:"shutdown_secs"`
	MaxUploadMBytes int    `yaml:"max_upload_mb"`
	UploadDir       string `yaml:"upload_dir"`
}

// DatabaseConfig holds the Postgres connection settings. The password is
// never stored in the file; it is read from the named environment variable.
type DatabaseConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	PasswordEnv string `yaml:"password_env"`
	Name        string `yaml:"name"`
	SSLMode     string `yaml:"ssl_mode"`
}

// SummarizerConfig configures the remote summarization endpoint.
type SummarizerConfig struct {
	Endpoint    string `yaml:"endpoint"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig configures the remote embedding inference endpoint.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ExtractorConfig bounds document extraction.
type ExtractorConfig struct {
	MaxTokens int `yaml:"max_tokens"`
}

// AuthConfig configures identity-token signing.
type AuthConfig struct {
	SecretEnv string `yaml:"secret_env"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Extractor  ExtractorConfig  `yaml:"extractor"`
	Auth       AuthConfig       `yaml:"auth"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownSecs == 0 {
		cfg.Server.ShutdownSecs = 10
	}
	if cfg.Server.MaxUploadMBytes == 0 {
		cfg.Server.MaxUploadMBytes = 64
	}
	if cfg.Server.UploadDir == "" {
		cfg.Server.UploadDir = "uploads"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "bookvault"
	}
	if cfg.Database.PasswordEnv == "" {
		cfg.Database.PasswordEnv = "DB_PASSWORD"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "bookvault"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Summarizer.APIKeyEnv == "" {
		cfg.Summarizer.APIKeyEnv = "SUMMARIZER_API_KEY"
	}
	if cfg.Summarizer.TimeoutSecs == 0 {
		cfg.Summarizer.TimeoutSecs = 60
	}
	if cfg.Embedder.BaseURL == "" {
		cfg.Embedder.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "sentence-transformers/distilbert-base-nli-mean-tokens"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "EMBEDDER_API_KEY"
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = 30
	}
	if cfg.Extractor.MaxTokens == 0 {
		cfg.Extractor.MaxTokens = 2000
	}
	if cfg.Auth.SecretEnv == "" {
		cfg.Auth.SecretEnv = "AUTH_SECRET"
	}
}

// DSN assembles the pgx connection string, resolving the password from the
// configured environment variable.
func (d DatabaseConfig) DSN() string {
	password := os.Getenv(d.PasswordEnv)
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, password, d.Host, d.Port, d.Name, d.SSLMode)
}
