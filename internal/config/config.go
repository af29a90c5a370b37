package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	APIMode        string
	BackendBaseURL string
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	DataDir        string
	DebugMode      bool
}

// fileConfig is the shape of the optional YAML config file. Environment
// variables override anything set here.
type fileConfig struct {
	APIMode        string `yaml:"api_mode"`
	BackendBaseURL string `yaml:"backend_base_url"`
	OpenAIKey      string `yaml:"openai_api_key"`
	OpenAIModel    string `yaml:"openai_model"`
	OpenAIBaseURL  string `yaml:"openai_base_url"`
	DataDir        string `yaml:"data_dir"`
	Debug          bool   `yaml:"debug"`
}

// Load loads configuration from the optional config file and environment
// variables
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	var fc fileConfig
	if err := readFileConfig(path, &fc); err != nil {
		return nil, err
	}

	dataDir := firstNonEmpty(os.Getenv("TASKBREAK_DATA_DIR"), fc.DataDir)
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data directory: %w", err)
		}
		dataDir = filepath.Join(base, "taskbreak")
	}

	cfg := &Config{
		APIMode:        getEnv("API_MODE", firstNonEmpty(fc.APIMode, "backend")),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", fc.BackendBaseURL),
		OpenAIKey:      getEnv("OPENAI_API_KEY", fc.OpenAIKey),
		OpenAIModel:    getEnv("OPENAI_MODEL", fc.OpenAIModel),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", fc.OpenAIBaseURL),
		DataDir:        dataDir,
		DebugMode:      getEnvBool("TASKBREAK_DEBUG", fc.Debug),
	}

	return cfg, nil
}

// DefaultConfigPath returns the location of the optional YAML config file
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, "taskbreak", "config.yaml"), nil
}

// readFileConfig reads a YAML config file into fc. A missing file is not an
// error.
func readFileConfig(path string, fc *fileConfig) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
