// ABOUTME: Main entry point for the redpen MCP server with stdio transport
// ABOUTME: Wires config, pipeline services, storage, and MCP tools
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"redpen/internal/charm"
	"redpen/internal/config"
	"redpen/internal/core"
	"redpen/internal/llm"
	"redpen/internal/mcp"
	"redpen/internal/search"
	"redpen/internal/spellcheck"
	"redpen/internal/storage"
	"redpen/internal/worker"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("OPENAI_BASE_URL") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - correction and fact check will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	chat, err := llm.NewClient(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.ChatModel,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize chat client: %v", err)
	}

	var providers []search.Provider
	if cfg.SearxURL != "" {
		providers = append(providers, search.NewSearXNGClient(cfg.SearxURL, cfg.Language))
	}
	if cfg.BraveKey != "" {
		providers = append(providers, search.NewBraveClient(cfg.BraveKey, ""))
	}
	if cfg.ExaURL != "" {
		providers = append(providers, search.NewExaClient(cfg.ExaURL))
	}
	searchClient := search.NewUnifiedClient(providers...)

	var checkers []spellcheck.Checker
	if cfg.LanguageToolURL != "" {
		checkers = append(checkers, spellcheck.NewLanguageToolClient(cfg.LanguageToolURL))
	}
	checkers = append(checkers, spellcheck.NewYandexSpellerClient(cfg.SpellerURL, cfg.SpellerOptions))
	speller, err := spellcheck.NewComposite(checkers...)
	if err != nil {
		log.Fatalf("Failed to initialize spell checkers: %v", err)
	}

	var converter core.DocumentConverter
	if cfg.WorkerURL != "" {
		converter = worker.NewClient(cfg.WorkerURL)
	}

	pipeline := core.NewPipeline(chat, searchClient, speller, converter, core.Options{
		MaxSentencesPerChunk: cfg.MaxSentencesPerChunk,
		ParallelChunkLimit:   cfg.ParallelChunkLimit,
		MaxToolRounds:        cfg.MaxToolRounds,
		Language:             cfg.Language,
	})

	// The server still proofreads without storage; preferences and job
	// history are simply not persisted.
	var store *storage.Storage
	kv, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		log.Printf("Warning: storage unavailable: %v", err)
	} else {
		store = storage.NewStorageWithClient(kv)
		defer store.Close()
	}

	server := mcpserver.NewMCPServer(
		"Redpen Proofreading",
		"0.1.0",
	)
	mcp.RegisterTools(server, store, pipeline)

	log.Println("Redpen MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
