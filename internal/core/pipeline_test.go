// ABOUTME: Tests for the pipeline orchestrator passes and failure policy
// ABOUTME: Uses hand-rolled fakes for the chat, search, spell-check and converter ports
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"redpen/internal/models"
)

// fakeChat routes requests to per-pass functions: requests that offer
// tools are fact-check calls, requests whose system prompt is the
// verifier prompt are Pass 2, everything else is chunk correction.
type fakeChat struct {
	mu         sync.Mutex
	corrects   int
	verifies   int
	factChecks int

	correctFn func(text string) (string, error)
	verifyFn  func(prompt string) (string, error)
	factFn    func(call int, messages []models.Message) (*models.ChatResponse, error)
}

func (f *fakeChat) Chat(_ context.Context, messages []models.Message, tools []models.Tool) (*models.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(tools) > 0 {
		f.factChecks++
		if f.factFn == nil {
			return &models.ChatResponse{Content: `{"corrections": [], "finalText": ""}`}, nil
		}
		return f.factFn(f.factChecks, messages)
	}

	if messages[0].Content == verifierSystemPrompt {
		f.verifies++
		if f.verifyFn == nil {
			return &models.ChatResponse{Content: messages[1].Content}, nil
		}
		content, err := f.verifyFn(messages[1].Content)
		if err != nil {
			return nil, err
		}
		return &models.ChatResponse{Content: content}, nil
	}

	f.corrects++
	if f.correctFn == nil {
		return &models.ChatResponse{Content: messages[1].Content}, nil
	}
	content, err := f.correctFn(messages[1].Content)
	if err != nil {
		return nil, err
	}
	return &models.ChatResponse{Content: content}, nil
}

func (f *fakeChat) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.corrects + f.verifies + f.factChecks
}

type fakeSearch struct {
	mu      sync.Mutex
	queries []string
	results []models.SearchResult
	err     error
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]models.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeSpeller struct {
	calls  int
	result *models.SpellCheckResult
	err    error
}

func (f *fakeSpeller) Check(_ context.Context, text, language string) (*models.SpellCheckResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &models.SpellCheckResult{CorrectedText: text}, nil
}

type fakeConverter struct {
	calls int
	err   error
}

func (f *fakeConverter) Generate(_ context.Context, original, corrected string, factChanges []models.FactChange) ([]byte, []byte, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return []byte("clean"), []byte("diff"), nil
}

func newTestPipeline(chat *fakeChat, search *fakeSearch) *Pipeline {
	return NewPipeline(chat, search, nil, nil, DefaultOptions())
}

func TestProcessText_EmptyInputIsFatal(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{}
			speller := &fakeSpeller{}
			converter := &fakeConverter{}
			p := NewPipeline(chat, &fakeSearch{}, speller, converter, DefaultOptions())

			_, err := p.ProcessText(context.Background(), Request{Text: tt.text})
			if !errors.Is(err, ErrEmptyText) {
				t.Fatalf("expected ErrEmptyText, got %v", err)
			}
			if chat.totalCalls() != 0 || speller.calls != 0 || converter.calls != 0 {
				t.Error("empty input must make zero external calls")
			}
		})
	}
}

func TestProcessText_SingleChunkNoChanges(t *testing.T) {
	// The end-to-end example: three sentences under the threshold form one
	// chunk, the model echoes it back, the fact check has no tool calls.
	chat := &fakeChat{}
	p := newTestPipeline(chat, &fakeSearch{})

	text := "Он идет в магазин. Она придет завтра. Я буду там еще."
	result, err := p.ProcessText(context.Background(), Request{Text: text})
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}

	if result.HasChanges {
		t.Error("expected hasChanges=false for an echoing model")
	}
	if result.CorrectedText != text {
		t.Errorf("text changed: %q", result.CorrectedText)
	}
	if len(result.FactChanges) != 0 {
		t.Errorf("expected no fact changes, got %d", len(result.FactChanges))
	}
	if chat.corrects != 1 {
		t.Errorf("expected exactly 1 correction call, got %d", chat.corrects)
	}
	if chat.verifies != 0 {
		t.Errorf("verification must be skipped when nothing changed, got %d calls", chat.verifies)
	}
	if chat.factChecks != 1 {
		t.Errorf("expected exactly 1 fact-check call, got %d", chat.factChecks)
	}
}

func TestProcessText_SingleChunkFailureIsFatal(t *testing.T) {
	chat := &fakeChat{
		correctFn: func(string) (string, error) { return "", errors.New("boom") },
	}
	p := newTestPipeline(chat, &fakeSearch{})

	_, err := p.ProcessText(context.Background(), Request{Text: "Only one sentence."})
	if err == nil {
		t.Fatal("expected error from single-chunk failure")
	}
	if !strings.Contains(err.Error(), "grammar correction failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcessText_ChunkFailureDegradesToOriginal(t *testing.T) {
	chat := &fakeChat{
		correctFn: func(text string) (string, error) {
			if strings.HasPrefix(text, "Second") {
				return "", errors.New("transport error")
			}
			return strings.ToUpper(text), nil
		},
		verifyFn: func(prompt string) (string, error) {
			// Keep the pass 1 output authoritative for this test.
			return "", nil
		},
	}
	p := newTestPipeline(chat, &fakeSearch{})

	text := "First block.\n\nSecond block.\n\nThird block."
	result, err := p.ProcessText(context.Background(), Request{Text: text})
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}

	want := "FIRST BLOCK.\n\nSecond block.\n\nTHIRD BLOCK."
	if result.CorrectedText != want {
		t.Errorf("expected failed chunk to keep original text:\nwant %q\ngot  %q", want, result.CorrectedText)
	}
}

func TestCorrectChunked_IndexCompleteness(t *testing.T) {
	chat := &fakeChat{}
	p := newTestPipeline(chat, &fakeSearch{})

	var parts []string
	for i := 0; i < 13; i++ {
		parts = append(parts, fmt.Sprintf("Paragraph number %d.", i))
	}
	text := strings.Join(parts, "\n\n")

	got, err := p.correctChunked(context.Background(), text, nil, "")
	if err != nil {
		t.Fatalf("correctChunked() error = %v", err)
	}
	if got != text {
		t.Errorf("echoing model must reproduce input:\nwant %q\ngot  %q", text, got)
	}
	if chat.corrects != 13 {
		t.Errorf("expected 13 correction calls, got %d", chat.corrects)
	}
}

func TestProcessText_VerifierFailureFallsBackToPass1(t *testing.T) {
	chat := &fakeChat{
		correctFn: func(text string) (string, error) { return strings.ToUpper(text), nil },
		verifyFn:  func(string) (string, error) { return "", errors.New("verifier down") },
	}
	p := newTestPipeline(chat, &fakeSearch{})

	result, err := p.ProcessText(context.Background(), Request{Text: "lower case text."})
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if result.CorrectedText != "LOWER CASE TEXT." {
		t.Errorf("expected pass 1 output bit-for-bit, got %q", result.CorrectedText)
	}
	if chat.verifies != 1 {
		t.Errorf("expected 1 verification attempt, got %d", chat.verifies)
	}
}

func TestProcessText_SpellCheckFeedsPass1(t *testing.T) {
	speller := &fakeSpeller{
		result: &models.SpellCheckResult{
			CorrectedText: "Fixed text.",
			Matches:       []models.SpellCheckMatch{{Message: "typo", Offset: 0, Length: 5}},
		},
	}
	var corrected []string
	chat := &fakeChat{
		correctFn: func(text string) (string, error) {
			corrected = append(corrected, text)
			return text, nil
		},
	}
	p := NewPipeline(chat, &fakeSearch{}, speller, nil, DefaultOptions())

	if _, err := p.ProcessText(context.Background(), Request{Text: "Fixxed text."}); err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if speller.calls != 1 {
		t.Fatalf("expected 1 spell-check call, got %d", speller.calls)
	}
	if len(corrected) != 1 || corrected[0] != "Fixed text." {
		t.Errorf("pass 1 must receive the spell-checked text, got %v", corrected)
	}
}

func TestProcessText_SpellCheckFailureIsAbsorbed(t *testing.T) {
	speller := &fakeSpeller{err: errors.New("languagetool down")}
	chat := &fakeChat{}
	p := NewPipeline(chat, &fakeSearch{}, speller, nil, DefaultOptions())

	text := "Nothing wrong here."
	result, err := p.ProcessText(context.Background(), Request{Text: text})
	if err != nil {
		t.Fatalf("spell-check failure must not abort the pipeline: %v", err)
	}
	if result.CorrectedText != text {
		t.Errorf("expected original text to flow through, got %q", result.CorrectedText)
	}
}

func TestProcessText_ConverterFailureIsNonFatal(t *testing.T) {
	chat := &fakeChat{
		correctFn: func(text string) (string, error) { return strings.ToUpper(text), nil },
		verifyFn:  func(string) (string, error) { return "", nil },
	}
	converter := &fakeConverter{err: errors.New("worker down")}
	p := NewPipeline(chat, &fakeSearch{}, nil, converter, DefaultOptions())

	result, err := p.ProcessText(context.Background(), Request{Text: "small text."})
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if !result.HasChanges {
		t.Error("expected hasChanges=true")
	}
	if result.CleanDoc != nil || result.DiffDoc != nil {
		t.Error("failed conversion must omit documents")
	}
	if converter.calls != 1 {
		t.Errorf("expected 1 converter call, got %d", converter.calls)
	}
}

func TestProcessText_UnchangedTextSkipsConverter(t *testing.T) {
	chat := &fakeChat{}
	converter := &fakeConverter{}
	p := NewPipeline(chat, &fakeSearch{}, nil, converter, DefaultOptions())

	result, err := p.ProcessText(context.Background(), Request{Text: "Already clean."})
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if result.HasChanges {
		t.Error("expected hasChanges=false")
	}
	if converter.calls != 0 {
		t.Errorf("unchanged text must not invoke document generation, got %d calls", converter.calls)
	}
}

func TestProcessText_DictionaryAndInstructionReachThePrompt(t *testing.T) {
	var systemPrompt string
	chat := &fakeChat{}
	chat.correctFn = func(text string) (string, error) { return text, nil }
	p := newTestPipeline(chat, &fakeSearch{})

	// Capture the prompt through a wrapper port.
	capture := &promptCapture{inner: chat}
	p.chat = capture

	req := Request{
		Text:        "Some text here.",
		Dictionary:  []string{"Redpen", "SearXNG"},
		Instruction: "Keep it formal",
	}
	if _, err := p.ProcessText(context.Background(), req); err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}

	systemPrompt = capture.firstSystemPrompt
	if !strings.Contains(systemPrompt, "Redpen, SearXNG") {
		t.Errorf("dictionary missing from system prompt: %q", systemPrompt)
	}
	if !strings.Contains(systemPrompt, "Keep it formal") {
		t.Errorf("instruction missing from system prompt: %q", systemPrompt)
	}
}

type promptCapture struct {
	mu                sync.Mutex
	inner             ChatClient
	firstSystemPrompt string
}

func (c *promptCapture) Chat(ctx context.Context, messages []models.Message, tools []models.Tool) (*models.ChatResponse, error) {
	c.mu.Lock()
	if c.firstSystemPrompt == "" && len(messages) > 0 && messages[0].Role == models.RoleSystem {
		c.firstSystemPrompt = messages[0].Content
	}
	c.mu.Unlock()
	return c.inner.Chat(ctx, messages, tools)
}
