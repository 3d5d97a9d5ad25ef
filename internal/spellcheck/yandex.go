// ABOUTME: Yandex Speller adapter checking text line by line with global offset adjustment
// ABOUTME: Error codes are mapped to human-readable messages; options are a bitmask
package spellcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"redpen/internal/models"
)

// Yandex Speller options bitmask.
const (
	IgnoreDigits         = 2
	IgnoreURLs           = 4
	FindRepeatWords      = 8
	IgnoreCapitalization = 512
)

// DefaultSpellerOptions is the bitmask used unless configured otherwise.
const DefaultSpellerOptions = IgnoreDigits | IgnoreURLs | FindRepeatWords

// YandexSpellerClient checks text against the free Yandex Speller API.
// The API takes one paragraph at a time, so the text is checked line by
// line with offsets shifted back into document coordinates.
type YandexSpellerClient struct {
	baseURL    string
	options    int
	httpClient *http.Client
}

// NewYandexSpellerClient creates a speller client. baseURL is
// overridable for tests; empty selects the public endpoint.
func NewYandexSpellerClient(baseURL string, options int) *YandexSpellerClient {
	if baseURL == "" {
		baseURL = "https://speller.yandex.net/services/spellservice.json"
	}
	if options == 0 {
		options = DefaultSpellerOptions
	}
	return &YandexSpellerClient{
		baseURL:    baseURL,
		options:    options,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type spellerError struct {
	Code int      `json:"code"`
	Pos  int      `json:"pos"`
	Len  int      `json:"len"`
	Word string   `json:"word"`
	S    []string `json:"s"`
}

// Check implements the spell-check port.
func (c *YandexSpellerClient) Check(ctx context.Context, text, language string) (*models.SpellCheckResult, error) {
	if language == "" {
		language = "ru"
	}

	lines := strings.Split(text, "\n")

	var allMatches []models.SpellCheckMatch
	offset := 0
	checkedAny := false

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			offset += len([]rune(line)) + 1
			continue
		}

		matches, err := c.checkLine(ctx, line, language)
		if err != nil {
			// A single bad line must not lose the rest of the document.
			log.Printf("[speller] line %d check failed: %v", i+1, err)
		} else {
			checkedAny = true
			for _, m := range matches {
				m.Offset += offset
				allMatches = append(allMatches, m)
			}
		}

		offset += len([]rune(line)) + 1
	}

	if !checkedAny && len(lines) > 0 && strings.TrimSpace(text) != "" {
		return nil, fmt.Errorf("speller: all lines failed")
	}

	return &models.SpellCheckResult{
		CorrectedText: applyCorrections(text, allMatches),
		Matches:       allMatches,
	}, nil
}

func (c *YandexSpellerClient) checkLine(ctx context.Context, line, language string) ([]models.SpellCheckMatch, error) {
	form := url.Values{}
	form.Set("text", line)
	form.Set("lang", language)
	form.Set("options", strconv.Itoa(c.options))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkText", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("speller: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speller: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speller: http %d", resp.StatusCode)
	}

	var errs []spellerError
	if err := json.NewDecoder(resp.Body).Decode(&errs); err != nil {
		return nil, fmt.Errorf("speller: decode response: %w", err)
	}

	matches := make([]models.SpellCheckMatch, len(errs))
	for i, e := range errs {
		matches[i] = models.SpellCheckMatch{
			Message:         spellerMessage(e.Code),
			Offset:          e.Pos,
			Length:          e.Len,
			Replacements:    e.S,
			RuleID:          fmt.Sprintf("YANDEX_%d", e.Code),
			RuleDescription: spellerDescription(e.Code),
		}
	}
	return matches, nil
}

func spellerMessage(code int) string {
	switch code {
	case 1:
		return "Слово не найдено в словаре"
	case 2:
		return "Повтор слова"
	case 3:
		return "Ошибка капитализации"
	case 4:
		return "Слишком много ошибок"
	default:
		return "Орфографическая ошибка"
	}
}

func spellerDescription(code int) string {
	switch code {
	case 1:
		return "Unknown word"
	case 2:
		return "Repeated word"
	case 3:
		return "Capitalization error"
	case 4:
		return "Too many errors"
	default:
		return "Spelling error"
	}
}
