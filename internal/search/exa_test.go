// ABOUTME: Tests for parsing the Exa MCP tool's plain-text result format
// ABOUTME: Pure parsing tests; the MCP transport itself is exercised in integration
package search

import "testing"

func TestParseExaText(t *testing.T) {
	text := `Title: First Result
URL: https://first.example
Text: Something about the first result.

Title: Second Result
URL: https://second.example
Text: Second snippet here.`

	results := parseExaText(text)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "First Result" || results[0].URL != "https://first.example" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Snippet != "Second snippet here." {
		t.Errorf("unexpected second snippet: %q", results[1].Snippet)
	}
}

func TestParseExaText_SkipsIncompleteBlocks(t *testing.T) {
	text := `Title: Has no URL
Text: orphan

Title: Complete
URL: https://ok
Text: fine`

	results := parseExaText(text)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Complete" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestParseExaText_CapsResults(t *testing.T) {
	text := ""
	for i := 0; i < 6; i++ {
		text += "Title: T\nURL: https://t\nText: s\n\n"
	}
	results := parseExaText(text)
	if len(results) != exaMaxResults {
		t.Errorf("expected %d results, got %d", exaMaxResults, len(results))
	}
}

func TestParseExaText_Empty(t *testing.T) {
	if got := parseExaText(""); len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}
