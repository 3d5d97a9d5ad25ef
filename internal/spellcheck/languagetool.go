// ABOUTME: LanguageTool spell/grammar check adapter over its /v2/check API
// ABOUTME: Applies first-choice replacements automatically to produce corrected text
package spellcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"redpen/internal/models"
)

// LanguageToolClient checks text against a LanguageTool server.
type LanguageToolClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLanguageToolClient creates a client for the given LanguageTool base
// URL (e.g. http://localhost:8010/v2).
func NewLanguageToolClient(baseURL string) *LanguageToolClient {
	return &LanguageToolClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type languageToolResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check implements the spell-check port. Transport failures are errors;
// the pipeline decides whether they matter.
func (c *LanguageToolClient) Check(ctx context.Context, text, language string) (*models.SpellCheckResult, error) {
	if language == "" {
		language = "ru"
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", language)
	form.Set("enabledOnly", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("languagetool: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool: http %d", resp.StatusCode)
	}

	var data languageToolResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("languagetool: decode response: %w", err)
	}

	matches := make([]models.SpellCheckMatch, len(data.Matches))
	for i, m := range data.Matches {
		replacements := make([]string, len(m.Replacements))
		for j, r := range m.Replacements {
			replacements[j] = r.Value
		}
		matches[i] = models.SpellCheckMatch{
			Message:         m.Message,
			Offset:          m.Offset,
			Length:          m.Length,
			Replacements:    replacements,
			RuleID:          m.Rule.ID,
			RuleDescription: m.Rule.Description,
		}
	}

	return &models.SpellCheckResult{
		CorrectedText: applyCorrections(text, matches),
		Matches:       matches,
	}, nil
}
