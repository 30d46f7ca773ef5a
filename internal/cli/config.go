package cli

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration file shape
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Storage struct {
		// Type is "memory" or "redis"
		Type     string `yaml:"type"`
		RedisURL string `yaml:"redis_url"`
	} `yaml:"storage"`

	// QuestionBank is a path to a question bank JSON file; empty uses
	// the built-in seed bank
	QuestionBank string `yaml:"question_bank"`

	Log struct {
		// Level is debug, info, warn, or error
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Storage.Type = "memory"
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig reads a YAML config file and applies environment
// overrides. A missing path yields defaults plus overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override the file
func (c *Config) applyEnv() {
	if v := os.Getenv("QUIZPARTY_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("QUIZPARTY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("QUESTION_BANK"); v != "" {
		c.QuestionBank = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
