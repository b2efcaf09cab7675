// Package config provides configuration loading and structs for the Kensaku server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Corpus CorpusConfig `yaml:"corpus"`
	Search SearchConfig `yaml:"search"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig locates the corpus file and names its columns.
type CorpusConfig struct {
	Path        string `yaml:"path"`
	TitleColumn string `yaml:"title_column"`
	BodyColumn  string `yaml:"body_column"`
}

// SearchConfig holds ranking model and result settings.
type SearchConfig struct {
	DefaultTopK   int      `yaml:"default_top_k"`
	MaxTopK       int      `yaml:"max_top_k"`
	TFIDFWeight   float64  `yaml:"tfidf_weight"`
	BM25Weight    float64  `yaml:"bm25_weight"`
	MaxVocabulary int      `yaml:"max_vocabulary"`
	K1            float64  `yaml:"k1"`
	B             float64  `yaml:"b"`
	StopWords     []string `yaml:"stop_words"`
}

// WatchConfig holds corpus file watch settings. When enabled, the server
// rebuilds both models from scratch whenever the corpus file changes.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads and parses the config file at path, expands the corpus path,
// and applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, filepath.Dir(path))
	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
