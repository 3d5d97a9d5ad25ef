// ABOUTME: System prompts and tool definitions for the correction, verification and fact-check passes
// ABOUTME: Prompt builders fold in the user dictionary and optional global instruction
package core

import (
	"fmt"
	"strings"

	"redpen/internal/models"
)

const correctorSystemPrompt = `You are a professional proofreader. Correct grammar, spelling and punctuation mistakes in the text the user sends.

Rules:
- Preserve the meaning, tone and language of the original text.
- Do not rewrite or rephrase beyond what is needed to fix errors.
- Preserve paragraph breaks and formatting.
- Return ONLY the corrected text, with no commentary.`

const verifierSystemPrompt = `You are a senior editor double-checking a proofreader's work. You receive the original text and a corrected version produced paragraph-by-paragraph. Check the corrected version against the full document: fix remaining errors, inconsistencies between paragraphs, and anything the paragraph-level pass missed or broke.

Return ONLY the final corrected text, with no commentary.`

const factCheckSystemPrompt = `You are a fact checker. Examine the text for factual errors: wrong names, dates, places, events, figures. Use the web_search tool to verify claims you are not certain about.

When you are done, respond with ONLY a JSON object of this shape:
{
  "corrections": [
    {"original": "claim as written", "corrected": "corrected claim", "context": "surrounding sentence", "source": "url"}
  ],
  "finalText": "the full text with factual corrections applied"
}

If the text contains no factual errors, return {"corrections": [], "finalText": ""}.`

// buildCorrectorPrompt assembles the Pass 1 system prompt from the base
// corrector prompt, the user's personal dictionary and an optional
// free-text instruction.
func buildCorrectorPrompt(dictionary []string, instruction string) string {
	var b strings.Builder
	b.WriteString(correctorSystemPrompt)

	if len(dictionary) > 0 {
		b.WriteString("\n\nThe following words are correct as written and must not be changed: ")
		b.WriteString(strings.Join(dictionary, ", "))
	}

	if strings.TrimSpace(instruction) != "" {
		b.WriteString("\n\nAdditional instruction from the user: ")
		b.WriteString(strings.TrimSpace(instruction))
	}

	return b.String()
}

// buildVerifierPrompt builds the Pass 2 user turn from both texts.
func buildVerifierPrompt(original, corrected string) string {
	return fmt.Sprintf("ORIGINAL TEXT:\n%s\n\nCORRECTED TEXT:\n%s", original, corrected)
}

// webSearchToolName is the single tool offered during fact-checking.
const webSearchToolName = "web_search"

func webSearchTool() models.Tool {
	return models.Tool{
		Name:        webSearchToolName,
		Description: "Search the web for current factual information. Returns titles, URLs and snippets.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query",
				},
			},
			"required": []string{"query"},
		},
	}
}
