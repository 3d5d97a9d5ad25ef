// ABOUTME: FactChange records one factual correction applied during fact-checking
// ABOUTME: PipelineResult is the final output contract of the whole pipeline
package models

// FactChange is a structured record of a factual correction, with an
// optional source citation from web search.
type FactChange struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Context   string `json:"context"`
	Source    string `json:"source,omitempty"`
}

// PipelineResult is what the orchestrator hands back to the caller.
// HasChanges is true iff the corrected text differs from the pre-pipeline
// original or at least one fact change was produced. CleanDoc and DiffDoc
// are present only when document generation succeeded.
type PipelineResult struct {
	CorrectedText string       `json:"corrected_text"`
	HasChanges    bool         `json:"has_changes"`
	FactChanges   []FactChange `json:"fact_changes"`
	CleanDoc      []byte       `json:"clean_doc,omitempty"`
	DiffDoc       []byte       `json:"diff_doc,omitempty"`
}
