// ABOUTME: Pipeline orchestrates the multi-pass correction flow over external ports
// ABOUTME: Pass 0 spell-check, Pass 1 chunked correction, Pass 2 verification, Pass 3 fact-check
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"redpen/internal/models"
)

// ErrEmptyText is returned when the input contains no processable text.
var ErrEmptyText = errors.New("text is empty")

// ChatClient sends a role-tagged conversation (optionally offering tools)
// and returns free text, tool-call requests, or both. Implementations must
// fail with an error on transport/protocol problems so the pipeline can
// tell "empty but successful" from "failed".
type ChatClient interface {
	Chat(ctx context.Context, messages []models.Message, tools []models.Tool) (*models.ChatResponse, error)
}

// SearchClient returns up to a few web results for a query. An empty
// result set is not an error; only transport failures are.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// SpellChecker checks text in the given language and returns a corrected
// version plus the flagged issues.
type SpellChecker interface {
	Check(ctx context.Context, text, language string) (*models.SpellCheckResult, error)
}

// DocumentConverter renders the clean and diff documents for a finished
// correction run.
type DocumentConverter interface {
	Generate(ctx context.Context, original, corrected string, factChanges []models.FactChange) (cleanDoc, diffDoc []byte, err error)
}

// Options tune the pipeline's chunking, concurrency and fact-check bounds.
type Options struct {
	MaxSentencesPerChunk int    // sentences per chunk before a paragraph is split further
	ParallelChunkLimit   int    // concurrent correction requests per batch
	MaxToolRounds        int    // fact-check tool-call round cap
	Language             string // spell-check target language
}

// DefaultOptions returns the standard pipeline tuning.
func DefaultOptions() Options {
	return Options{
		MaxSentencesPerChunk: DefaultMaxSentencesPerChunk,
		ParallelChunkLimit:   5,
		MaxToolRounds:        5,
		Language:             "ru",
	}
}

// Pipeline drives the correction passes. The spell checker and document
// converter are optional; a nil spell checker skips Pass 0 and a nil
// converter skips document generation.
type Pipeline struct {
	chat      ChatClient
	search    SearchClient
	speller   SpellChecker
	converter DocumentConverter
	segmenter *Segmenter
	opts      Options
}

// NewPipeline wires the pipeline to its collaborators.
func NewPipeline(chat ChatClient, search SearchClient, speller SpellChecker, converter DocumentConverter, opts Options) *Pipeline {
	if opts.ParallelChunkLimit <= 0 {
		opts.ParallelChunkLimit = 5
	}
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = 5
	}
	if opts.Language == "" {
		opts.Language = "ru"
	}
	return &Pipeline{
		chat:      chat,
		search:    search,
		speller:   speller,
		converter: converter,
		segmenter: NewSegmenter(opts.MaxSentencesPerChunk),
		opts:      opts,
	}
}

// Request is one proofreading request: the text plus the user's personal
// dictionary and optional free-text instruction.
type Request struct {
	Text        string
	Dictionary  []string
	Instruction string
}

// ProcessText runs the full pipeline. Only two failures are fatal: empty
// input, and a hard failure of the single-chunk correction path. Every
// other external-call failure degrades to the best available prior text.
func (p *Pipeline) ProcessText(ctx context.Context, req Request) (*models.PipelineResult, error) {
	originalText := req.Text
	if strings.TrimSpace(originalText) == "" {
		return nil, ErrEmptyText
	}

	// Pass 0: offline spell-check, advisory only.
	afterPass0 := originalText
	if p.speller != nil {
		if result, err := p.speller.Check(ctx, originalText, p.opts.Language); err != nil {
			log.Printf("[pipeline] pass 0 spell-check failed (non-critical): %v", err)
		} else {
			afterPass0 = result.CorrectedText
			log.Printf("[pipeline] pass 0 complete, %d issues fixed", len(result.Matches))
		}
	}

	// Pass 1: chunked grammar correction.
	afterPass1, err := p.correctChunked(ctx, afterPass0, req.Dictionary, req.Instruction)
	if err != nil {
		return nil, err
	}

	// Pass 2: full-document verification against the pristine original.
	correctedText := p.verifyCorrections(ctx, originalText, afterPass1)

	// Pass 3: fact-check with the web-search tool loop.
	factChanges, finalText := p.factCheck(ctx, correctedText)
	if finalText != "" {
		correctedText = finalText
	}

	hasChanges := originalText != correctedText || len(factChanges) > 0
	if !hasChanges {
		return &models.PipelineResult{
			CorrectedText: originalText,
			HasChanges:    false,
			FactChanges:   []models.FactChange{},
		}, nil
	}

	result := &models.PipelineResult{
		CorrectedText: correctedText,
		HasChanges:    true,
		FactChanges:   factChanges,
	}

	if p.converter != nil {
		cleanDoc, diffDoc, err := p.converter.Generate(ctx, originalText, correctedText, factChanges)
		if err != nil {
			log.Printf("[pipeline] document generation failed (non-critical): %v", err)
		} else {
			result.CleanDoc = cleanDoc
			result.DiffDoc = diffDoc
		}
	}

	return result, nil
}

// correctChunked splits text into chunks and corrects them in bounded
// parallel batches. A chunk whose correction fails falls back to its
// original text; only the single-chunk path can fail the pipeline.
func (p *Pipeline) correctChunked(ctx context.Context, text string, dictionary []string, instruction string) (string, error) {
	chunks := p.segmenter.Split(text)
	log.Printf("[pipeline] split into %d chunks", len(chunks))

	if len(chunks) == 0 {
		return "", ErrEmptyText
	}

	if len(chunks) == 1 {
		corrected, err := p.correctSingleChunk(ctx, chunks[0].Text, dictionary, instruction)
		if err != nil {
			return "", fmt.Errorf("grammar correction failed: %w", err)
		}
		return corrected, nil
	}

	results := make(map[int]string, len(chunks))

	for start := 0; start < len(chunks); start += p.opts.ParallelChunkLimit {
		end := start + p.opts.ParallelChunkLimit
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		// Each goroutine owns exactly one slot; the WaitGroup is the
		// only barrier needed before the slice is read.
		batchResults := make([]models.ChunkResult, len(batch))
		var wg sync.WaitGroup
		for i, chunk := range batch {
			wg.Add(1)
			go func(slot int, chunk models.TextChunk) {
				defer wg.Done()
				batchResults[slot] = p.processChunk(ctx, chunk, dictionary, instruction)
			}(i, chunk)
		}
		wg.Wait()

		for _, r := range batchResults {
			if !r.Success {
				log.Printf("[pipeline] chunk %d failed, keeping original text", r.Index)
			}
			results[r.Index] = r.CorrectedText
		}
	}

	return p.segmenter.Reassemble(chunks, results), nil
}

// processChunk corrects one chunk, degrading to the original text on any
// failure so the reassembly map always has an entry for this index.
func (p *Pipeline) processChunk(ctx context.Context, chunk models.TextChunk, dictionary []string, instruction string) models.ChunkResult {
	corrected, err := p.correctSingleChunk(ctx, chunk.Text, dictionary, instruction)
	if err != nil {
		log.Printf("[pipeline] chunk %d error: %v", chunk.Index, err)
		return models.ChunkResult{Index: chunk.Index, CorrectedText: chunk.Text, Success: false}
	}
	return models.ChunkResult{Index: chunk.Index, CorrectedText: corrected, Success: true}
}

// correctSingleChunk issues one isolated correction request: a system turn
// plus one user turn holding only this chunk's text. No cross-chunk
// context is shared.
func (p *Pipeline) correctSingleChunk(ctx context.Context, text string, dictionary []string, instruction string) (string, error) {
	messages := []models.Message{
		{Role: models.RoleSystem, Content: buildCorrectorPrompt(dictionary, instruction)},
		{Role: models.RoleUser, Content: text},
	}

	resp, err := p.chat.Chat(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	if resp.Content == "" {
		return "", errors.New("empty model response")
	}
	return resp.Content, nil
}

// verifyCorrections runs Pass 2. The call is skipped when nothing changed;
// any failure falls back to the Pass 1 result unchanged.
func (p *Pipeline) verifyCorrections(ctx context.Context, original, corrected string) string {
	if original == corrected {
		return corrected
	}

	messages := []models.Message{
		{Role: models.RoleSystem, Content: verifierSystemPrompt},
		{Role: models.RoleUser, Content: buildVerifierPrompt(original, corrected)},
	}

	resp, err := p.chat.Chat(ctx, messages, nil)
	if err != nil {
		log.Printf("[pipeline] pass 2 verification failed (non-critical): %v", err)
		return corrected
	}
	if resp.Content == "" {
		log.Printf("[pipeline] pass 2 returned empty, keeping pass 1 result")
		return corrected
	}
	return resp.Content
}
