// Package config loads the client configuration from a YAML file,
// environment variables and an optional .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Outputs OutputsConfig `mapstructure:"outputs"`
}

type APIConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"required,url"`
	Token         string `mapstructure:"token"`
	RetryAttempts uint   `mapstructure:"retry_attempts"`
}

type OutputsConfig struct {
	NotesDirectory string `mapstructure:"notes_directory" validate:"required"`
}

func Load(configFile string) (*Config, error) {
	// A .env in the working directory supplies the same variables the
	// platform itself reads. Missing file is fine.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("godotenv.Load() > %w", err)
		}
	}

	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studymate")
	}

	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.retry_attempts", 3)
	v.SetDefault("outputs.notes_directory", "downloads")

	// Credentials come from environment variables only, not from config files
	if err := v.BindEnv("api.base_url", "STUDYMATE_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYMATE_API_BASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("api.token", "STUDYMATE_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYMATE_API_TOKEN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
