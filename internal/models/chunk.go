// ABOUTME: TextChunk represents a bounded slice of a document processed independently
// ABOUTME: Produced by the segmenter, consumed immutably by the correction pass
package models

// TextChunk is one independently-correctable slice of a document.
// Indices are 0-based and contiguous across the whole document.
type TextChunk struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
}

// ChunkResult is the outcome of exactly one correction attempt for a chunk.
// When Success is false, CorrectedText carries the original chunk text so
// reassembly never sees a missing or garbled slot.
type ChunkResult struct {
	Index         int    `json:"index"`
	CorrectedText string `json:"corrected_text"`
	Success       bool   `json:"success"`
}
