// ABOUTME: Composite spell checker running several checkers in sequence
// ABOUTME: Each checker sees the previous one's corrected text; failures are absorbed
package spellcheck

import (
	"context"
	"errors"
	"log"

	"redpen/internal/models"
)

// Checker is one spell-check backend in the composite chain.
type Checker interface {
	Check(ctx context.Context, text, language string) (*models.SpellCheckResult, error)
}

// Composite runs its checkers in order, threading the corrected text
// from each into the next and collecting every match. A failed checker
// is skipped; the chain only fails if no checker succeeds.
type Composite struct {
	checkers []Checker
}

// NewComposite builds a composite over at least one checker.
func NewComposite(checkers ...Checker) (*Composite, error) {
	if len(checkers) == 0 {
		return nil, errors.New("at least one spell checker is required")
	}
	return &Composite{checkers: checkers}, nil
}

// Check implements the spell-check port.
func (c *Composite) Check(ctx context.Context, text, language string) (*models.SpellCheckResult, error) {
	currentText := text
	var allMatches []models.SpellCheckMatch
	succeeded := 0

	for i, checker := range c.checkers {
		result, err := checker.Check(ctx, currentText, language)
		if err != nil {
			log.Printf("[spellcheck] checker %d/%d failed: %v", i+1, len(c.checkers), err)
			continue
		}
		succeeded++
		allMatches = append(allMatches, result.Matches...)
		if result.CorrectedText != "" {
			currentText = result.CorrectedText
		}
	}

	if succeeded == 0 {
		return nil, errors.New("all spell checkers failed")
	}

	return &models.SpellCheckResult{
		CorrectedText: currentText,
		Matches:       allMatches,
	}, nil
}
