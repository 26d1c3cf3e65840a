// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the profile-forge service configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Parsing ParsingConfig `mapstructure:"parsing"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port          int   `mapstructure:"port"`
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
}

// OpenAIConfig holds completion service settings
type OpenAIConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	VisionModel string `mapstructure:"vision_model"`
}

// ParsingConfig holds pipeline tuning knobs
type ParsingConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

// RedisConfig holds result-cache settings; an empty address disables caching
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// StorageConfig holds the parse-history database path
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// WatchConfig holds watchdog settings
type WatchConfig struct {
	Paths []string `mapstructure:"paths"`
}

// Load loads configuration from file and environment. An empty configPath
// falls back to ~/.profile-forge/config.yaml; a missing file is fine and
// just means defaults plus environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_size", int64(20<<20)) // 20 MB
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "")
	v.SetDefault("openai.vision_model", "")
	v.SetDefault("parsing.max_attempts", 3)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.db_path", "./profile-forge.db")
	v.SetDefault("watch.paths", []string{"./watch"})

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".profile-forge", "config.yaml"))
	}

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
					return nil, fmt.Errorf("failed to read config: %w", err)
				}
			}
		}
		// No config file is fine, we run on defaults + environment
	}

	v.SetEnvPrefix("PROFILE_FORGE")
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The API key is the one setting with a well-known external name
	if config.OpenAI.APIKey == "" {
		config.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return &config, nil
}
