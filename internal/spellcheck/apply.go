// ABOUTME: Shared helper that applies first-choice replacements to checked text
// ABOUTME: Works in reverse offset order so earlier offsets stay valid
package spellcheck

import (
	"sort"

	"redpen/internal/models"
)

// applyCorrections substitutes the first suggested replacement for every
// match, from the end of the text toward the start so offsets are not
// invalidated. Offsets and lengths are rune-based, matching how the
// provider APIs count characters.
func applyCorrections(text string, matches []models.SpellCheckMatch) string {
	if len(matches) == 0 {
		return text
	}

	sorted := make([]models.SpellCheckMatch, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	runes := []rune(text)
	for _, m := range sorted {
		if len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Offset+m.Length > len(runes) {
			continue
		}
		replacement := []rune(m.Replacements[0])
		updated := make([]rune, 0, len(runes)-m.Length+len(replacement))
		updated = append(updated, runes[:m.Offset]...)
		updated = append(updated, replacement...)
		updated = append(updated, runes[m.Offset+m.Length:]...)
		runes = updated
	}
	return string(runes)
}
