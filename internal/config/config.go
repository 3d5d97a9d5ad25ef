// ABOUTME: Centralized configuration for the proofreading pipeline and its services
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the proofreading system
type Config struct {
	// LLM settings
	OpenAIKey  string
	BaseURL    string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Pipeline settings
	Language             string
	MaxSentencesPerChunk int
	ParallelChunkLimit   int
	MaxToolRounds        int

	// Spell-check services
	LanguageToolURL string
	SpellerURL      string
	SpellerOptions  int

	// Web search providers
	SearxURL string
	BraveKey string
	ExaURL   string

	// Document worker
	WorkerURL string

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:            os.Getenv("OPENAI_API_KEY"),
		BaseURL:              os.Getenv("OPENAI_BASE_URL"),
		ChatModel:            getEnv("REDPEN_MODEL", "gpt-4o-mini"),
		Timeout:              getEnvDuration("OPENAI_TIMEOUT", 120*time.Second),
		MaxRetries:           getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:           getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		Language:             getEnv("REDPEN_LANGUAGE", "ru"),
		MaxSentencesPerChunk: getEnvInt("REDPEN_CHUNK_SENTENCES", 5),
		ParallelChunkLimit:   getEnvInt("REDPEN_PARALLEL_CHUNKS", 5),
		MaxToolRounds:        getEnvInt("REDPEN_MAX_TOOL_ROUNDS", 5),
		LanguageToolURL:      os.Getenv("LANGUAGETOOL_URL"),
		SpellerURL:           getEnv("YANDEX_SPELLER_URL", "https://speller.yandex.net/services/spellservice.json"),
		SpellerOptions:       getEnvInt("YANDEX_SPELLER_OPTIONS", 0),
		SearxURL:             os.Getenv("SEARXNG_URL"),
		BraveKey:             os.Getenv("BRAVE_API_KEY"),
		ExaURL:               os.Getenv("EXA_MCP_URL"),
		WorkerURL:            os.Getenv("WORKER_URL"),
		CharmHost:            getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:          getEnv("CHARM_DB", "redpen"),
		AutoSync:             getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxSentencesPerChunk < 1 {
		return fmt.Errorf("REDPEN_CHUNK_SENTENCES must be >= 1, got %d", c.MaxSentencesPerChunk)
	}
	if c.ParallelChunkLimit < 1 {
		return fmt.Errorf("REDPEN_PARALLEL_CHUNKS must be >= 1, got %d", c.ParallelChunkLimit)
	}
	if c.MaxToolRounds < 0 {
		return fmt.Errorf("REDPEN_MAX_TOOL_ROUNDS must be >= 0, got %d", c.MaxToolRounds)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
