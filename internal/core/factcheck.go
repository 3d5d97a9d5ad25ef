// ABOUTME: Pass 3 fact-check tool-call loop with bounded rounds over the search port
// ABOUTME: Parses the model's final answer with a lenient brace-extraction heuristic
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"redpen/internal/models"
)

const noResultsMarker = "No results found"

type factCheckAnswer struct {
	Corrections []models.FactChange `json:"corrections"`
	FinalText   string              `json:"finalText"`
}

// factCheck runs the fact-check conversation. The model is offered the
// web_search tool; each round of tool calls is answered with search
// results until the model responds with text or the round cap is hit.
// Every failure is absorbed: the pass returns zero corrections and an
// empty finalText, leaving the Pass 2 text as final.
func (p *Pipeline) factCheck(ctx context.Context, text string) ([]models.FactChange, string) {
	tools := []models.Tool{webSearchTool()}
	messages := []models.Message{
		{Role: models.RoleSystem, Content: factCheckSystemPrompt},
		{Role: models.RoleUser, Content: text},
	}

	resp, err := p.chat.Chat(ctx, messages, tools)
	if err != nil {
		log.Printf("[pipeline] pass 3 fact-check failed (non-critical): %v", err)
		return []models.FactChange{}, ""
	}

	for round := 0; len(resp.ToolCalls) > 0; round++ {
		if round >= p.opts.MaxToolRounds {
			log.Printf("[pipeline] pass 3 hit tool round cap (%d), stopping", p.opts.MaxToolRounds)
			return []models.FactChange{}, ""
		}

		// Echo the model's tool calls, then answer each one by ID.
		messages = append(messages, models.Message{
			Role:      models.RoleAssistant,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			messages = append(messages, models.Message{
				Role:       models.RoleTool,
				ToolCallID: call.ID,
				Content:    p.runToolCall(ctx, call),
			})
		}

		resp, err = p.chat.Chat(ctx, messages, tools)
		if err != nil {
			log.Printf("[pipeline] pass 3 round %d failed (non-critical): %v", round+1, err)
			return []models.FactChange{}, ""
		}
	}

	if resp.Content == "" {
		return []models.FactChange{}, ""
	}

	answer := parseFactCheckAnswer(resp.Content)
	return answer.Corrections, answer.FinalText
}

// runToolCall executes one web_search tool call and formats its results
// for the tool-result message. Unknown tools and undecodable arguments
// fail closed with the no-results marker so the call ID still gets its
// matching reply.
func (p *Pipeline) runToolCall(ctx context.Context, call models.ToolCall) string {
	if call.Name != webSearchToolName {
		log.Printf("[pipeline] fact-check requested unknown tool %q", call.Name)
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil || strings.TrimSpace(args.Query) == "" {
		log.Printf("[pipeline] fact-check tool call %s had no valid query", call.ID)
		return noResultsMarker
	}

	log.Printf("[pipeline] fact-check searching: %s", args.Query)
	results, err := p.search.Search(ctx, args.Query)
	if err != nil {
		log.Printf("[pipeline] search failed (non-critical): %v", err)
		return noResultsMarker
	}
	if len(results) == 0 {
		return noResultsMarker
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = fmt.Sprintf("%s: %s (%s)", r.Title, r.Snippet, r.URL)
	}
	return strings.Join(lines, "\n")
}

// parseFactCheckAnswer extracts the JSON object from the model's final
// response. The heuristic is deliberately lenient: take the substring from
// the first '{' to the last '}' and try to parse it; anything absent or
// malformed makes the pass a no-op.
func parseFactCheckAnswer(content string) factCheckAnswer {
	empty := factCheckAnswer{Corrections: []models.FactChange{}}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return empty
	}

	var answer factCheckAnswer
	if err := json.Unmarshal([]byte(content[start:end+1]), &answer); err != nil {
		log.Printf("[pipeline] fact-check answer was not valid JSON, treating as no-op")
		return empty
	}
	if answer.Corrections == nil {
		answer.Corrections = []models.FactChange{}
	}
	return answer
}
