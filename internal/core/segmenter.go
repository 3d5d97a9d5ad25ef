// ABOUTME: Segmenter splits documents into bounded chunks along paragraph/sentence boundaries
// ABOUTME: Reassembly substitutes corrected text by index and never drops a chunk
package core

import (
	"regexp"
	"strings"

	"redpen/internal/models"
)

// DefaultMaxSentencesPerChunk bounds how many sentences a single chunk may hold.
const DefaultMaxSentencesPerChunk = 5

var paragraphSplitRe = regexp.MustCompile(`\n\n+`)

// Segmenter splits a document into bounded text chunks and reassembles
// corrected chunks back into one document. Pure text algorithm, no I/O.
type Segmenter struct {
	maxSentences int
}

// NewSegmenter creates a segmenter. maxSentences <= 0 selects the default.
func NewSegmenter(maxSentences int) *Segmenter {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentencesPerChunk
	}
	return &Segmenter{maxSentences: maxSentences}
}

// Split breaks text into chunks on blank-line-delimited paragraphs.
// A paragraph with more than maxSentences sentences is split into
// consecutive groups of maxSentences sentences, each group its own chunk.
// Blank paragraphs contribute no chunk but still advance the offset
// counter so StartOffset stays meaningful. Chunk indices are sequential
// from 0 regardless of which paragraph produced them.
func (s *Segmenter) Split(text string) []models.TextChunk {
	paragraphs := paragraphSplitRe.Split(text, -1)

	var chunks []models.TextChunk
	offset := 0

	for _, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) == "" {
			offset += len(paragraph) + 2 // account for the \n\n separator
			continue
		}

		sentences := splitSentences(paragraph)

		if len(sentences) <= s.maxSentences {
			chunks = append(chunks, models.TextChunk{
				Index:       len(chunks),
				Text:        paragraph,
				StartOffset: offset,
			})
			offset += len(paragraph) + 2
			continue
		}

		for i := 0; i < len(sentences); i += s.maxSentences {
			end := i + s.maxSentences
			if end > len(sentences) {
				end = len(sentences)
			}
			chunkText := strings.Join(sentences[i:end], " ")
			chunks = append(chunks, models.TextChunk{
				Index:       len(chunks),
				Text:        chunkText,
				StartOffset: offset,
			})
			offset += len(chunkText) + 1
		}
	}

	return chunks
}

// Reassemble joins chunks back into one document with a blank line between
// them, substituting corrected[index] where present and falling back to the
// original chunk text otherwise. Exactly one output slot per input chunk.
func (s *Segmenter) Reassemble(chunks []models.TextChunk, corrected map[int]string) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		if text, ok := corrected[chunk.Index]; ok {
			parts[i] = text
		} else {
			parts[i] = chunk.Text
		}
	}
	return strings.Join(parts, "\n\n")
}

// splitSentences splits on `.`, `!` or `?` immediately followed by
// whitespace or end-of-text. A deliberate heuristic: abbreviations are
// not special-cased.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			atEnd := i == len(runes)-1
			if atEnd || isSpace(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
