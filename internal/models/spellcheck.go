// ABOUTME: Spell-check result types shared by the spell-check port and adapters
// ABOUTME: Matches carry source offsets so corrections can be applied in place
package models

// SpellCheckMatch is one flagged issue with its position in the checked text.
type SpellCheckMatch struct {
	Message         string   `json:"message"`
	Offset          int      `json:"offset"`
	Length          int      `json:"length"`
	Replacements    []string `json:"replacements"`
	RuleID          string   `json:"rule_id"`
	RuleDescription string   `json:"rule_description"`
}

// SpellCheckResult is the outcome of one spell-check run: the text with
// first-choice replacements already applied, plus the raw matches.
type SpellCheckResult struct {
	CorrectedText string            `json:"corrected_text"`
	Matches       []SpellCheckMatch `json:"matches"`
}
