// ABOUTME: Builds the correction pipeline and its service clients from config
// ABOUTME: Shared by the proofread and mcp commands
package commands

import (
	"fmt"
	"log"

	"redpen/internal/config"
	"redpen/internal/core"
	"redpen/internal/llm"
	"redpen/internal/search"
	"redpen/internal/spellcheck"
	"redpen/internal/worker"
)

// buildPipeline wires the chat client, search providers, spell checkers,
// and document worker into a pipeline. Optional services that are not
// configured are left out; the pipeline degrades accordingly.
func buildPipeline(cfg *config.Config) (*core.Pipeline, error) {
	chat, err := llm.NewClient(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.ChatModel,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing chat client: %w", err)
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
	if len(providers) == 0 && verbose {
		log.Println("[wiring] no search providers configured, fact check will find no sources")
	}
	searchClient := search.NewUnifiedClient(providers...)

	var checkers []spellcheck.Checker
	if cfg.LanguageToolURL != "" {
		checkers = append(checkers, spellcheck.NewLanguageToolClient(cfg.LanguageToolURL))
	}
	checkers = append(checkers, spellcheck.NewYandexSpellerClient(cfg.SpellerURL, cfg.SpellerOptions))
	speller, err := spellcheck.NewComposite(checkers...)
	if err != nil {
		return nil, fmt.Errorf("initializing spell checkers: %w", err)
	}

	var converter core.DocumentConverter
	if cfg.WorkerURL != "" {
		converter = worker.NewClient(cfg.WorkerURL)
	}

	return core.NewPipeline(chat, searchClient, speller, converter, core.Options{
		MaxSentencesPerChunk: cfg.MaxSentencesPerChunk,
		ParallelChunkLimit:   cfg.ParallelChunkLimit,
		MaxToolRounds:        cfg.MaxToolRounds,
		Language:             cfg.Language,
	}), nil
}
