// Package config loads the connection target and chunking parameters from
// the process environment, an optional .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvRedisURL     = "REDIS_URL"
	EnvChunkSize    = "CHUNKCACHE_CHUNK_SIZE"
	EnvNamespace    = "CHUNKCACHE_NAMESPACE"
	EnvMaxValueSize = "CHUNKCACHE_MAX_VALUE_SIZE"

	DefaultRedisURL = "redis://localhost:6379/0"
)

// DotEnvFile is loaded into the process environment before it is read.
// Variables already set win over the file; a missing file is ignored.
// Empty disables it.
var DotEnvFile = ".env"

type Config struct {
	RedisURL     string `yaml:"redisUrl"`
	ChunkSize    int    `yaml:"chunkSize"`    // 0 => library default
	Namespace    string `yaml:"namespace"`    // empty => keys used verbatim
	MaxValueSize int    `yaml:"maxValueSize"` // 0 => unlimited
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Load reads a YAML file; environment variables override file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.defaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.RedisURL == "" {
		return fmt.Errorf("redisUrl is required")
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunkSize must not be negative")
	}
	if c.MaxValueSize < 0 {
		return fmt.Errorf("maxValueSize must not be negative")
	}
	return nil
}

func (c *Config) defaults() {
	if c.RedisURL == "" {
		c.RedisURL = DefaultRedisURL
	}
}

func (c *Config) applyEnv() error {
	if err := loadDotEnv(); err != nil {
		return err
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv(EnvNamespace); v != "" {
		c.Namespace = v
	}
	if err := envInt(EnvChunkSize, &c.ChunkSize); err != nil {
		return err
	}
	return envInt(EnvMaxValueSize, &c.MaxValueSize)
}

func loadDotEnv() error {
	if DotEnvFile == "" {
		return nil
	}
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", DotEnvFile, err)
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*dst = n
	return nil
}
