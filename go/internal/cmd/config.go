package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL                    string `yaml:"base_url"`
	Language                   string `yaml:"language"`
	SubmissionPollIntervalSec  int    `yaml:"submission_poll_interval_sec"`
	LeaderboardPollIntervalSec int    `yaml:"leaderboard_poll_interval_sec"`
}

func defaultConfig() *Config {
	return &Config{
		BaseURL:                    "http://localhost:8080",
		Language:                   "java",
		SubmissionPollIntervalSec:  3,
		LeaderboardPollIntervalSec: 20,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// applyEnvOverrides lets environment variables win over file values
func (c *Config) applyEnvOverrides() {
	c.BaseURL = getEnv("CODEARENA_BASE_URL", c.BaseURL)
	c.Language = getEnv("CODEARENA_LANGUAGE", c.Language)
	c.SubmissionPollIntervalSec = getEnvAsInt("CODEARENA_SUBMISSION_POLL_INTERVAL_SEC", c.SubmissionPollIntervalSec)
	c.LeaderboardPollIntervalSec = getEnvAsInt("CODEARENA_LEADERBOARD_POLL_INTERVAL_SEC", c.LeaderboardPollIntervalSec)
}
