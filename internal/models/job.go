// ABOUTME: Job tracks one proofreading run through its status lifecycle
// ABOUTME: Persisted so past runs can be listed and inspected
package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a proofreading job.
type JobStatus string

const (
	JobPending      JobStatus = "pending"
	JobParsing      JobStatus = "parsing"
	JobCorrecting   JobStatus = "correcting"
	JobFactChecking JobStatus = "fact_checking"
	JobGenerating   JobStatus = "generating"
	JobDone         JobStatus = "done"
	JobError        JobStatus = "error"
)

// InputFormat identifies the format of an uploaded document.
type InputFormat string

const (
	FormatDocx InputFormat = "docx"
	FormatDoc  InputFormat = "doc"
	FormatTxt  InputFormat = "txt"
	FormatMd   InputFormat = "md"
	FormatPdf  InputFormat = "pdf"
)

// Job is one proofreading run.
type Job struct {
	ID            string       `json:"id"`
	UserID        int64        `json:"user_id"`
	Status        JobStatus    `json:"status"`
	InputType     string       `json:"input_type"` // "text" or "file"
	InputFormat   InputFormat  `json:"input_format,omitempty"`
	OriginalText  string       `json:"original_text"`
	CorrectedText string       `json:"corrected_text,omitempty"`
	FactChanges   []FactChange `json:"fact_changes,omitempty"`
	Error         string       `json:"error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   time.Time    `json:"completed_at,omitzero"`
}

// NewJob creates a pending job for the given user and input.
func NewJob(userID int64, inputType string, originalText string) *Job {
	return &Job{
		ID:           uuid.New().String(),
		UserID:       userID,
		Status:       JobPending,
		InputType:    inputType,
		OriginalText: originalText,
		CreatedAt:    time.Now().UTC(),
	}
}

// Complete marks the job done with its final output.
func (j *Job) Complete(correctedText string, factChanges []FactChange) {
	j.Status = JobDone
	j.CorrectedText = correctedText
	j.FactChanges = factChanges
	j.CompletedAt = time.Now().UTC()
}

// Fail marks the job failed with the given reason.
func (j *Job) Fail(reason string) {
	j.Status = JobError
	j.Error = reason
	j.CompletedAt = time.Now().UTC()
}
