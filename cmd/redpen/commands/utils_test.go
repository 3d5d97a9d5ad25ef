// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, formatTime, and input format detection

package commands

import (
	"testing"
	"time"

	"redpen/internal/models"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "cyrillic counted in runes",
			input:  "длинное предложение",
			maxLen: 10,
			want:   "длинное...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-48 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTime(tt.t)
			if got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		wantFormat models.InputFormat
		wantOK     bool
	}{
		{"docx", "draft.docx", models.FormatDocx, true},
		{"doc", "old.doc", models.FormatDoc, true},
		{"txt", "notes.txt", models.FormatTxt, true},
		{"markdown", "README.md", models.FormatMd, true},
		{"pdf", "paper.pdf", models.FormatPdf, true},
		{"uppercase extension", "DRAFT.DOCX", models.FormatDocx, true},
		{"unsupported", "image.png", "", false},
		{"no extension", "Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := formatFromExtension(tt.file)
			if ok != tt.wantOK || got != tt.wantFormat {
				t.Errorf("formatFromExtension(%q) = (%q, %v), want (%q, %v)",
					tt.file, got, ok, tt.wantFormat, tt.wantOK)
			}
		})
	}
}
