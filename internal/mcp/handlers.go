// ABOUTME: MCP tool handler implementations for the proofreading server
// ABOUTME: Runs the pipeline with per-user preferences and records job history
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"redpen/internal/core"
	"redpen/internal/models"
	"redpen/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage  *storage.Storage // nil when persistence is unavailable
	pipeline *core.Pipeline
}

// loadUser returns the stored user record or a fresh in-memory one when
// storage is unavailable.
func (h *Handlers) loadUser(userID int64) (*models.User, error) {
	if h.storage == nil {
		return models.NewUser(userID), nil
	}
	return h.storage.GetOrCreateUser(userID)
}

func (h *Handlers) saveUser(user *models.User) error {
	if h.storage == nil {
		return nil
	}
	return h.storage.SaveUser(user)
}

// ProofreadText handles the proofread_text tool
func (h *Handlers) ProofreadText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	job := models.NewJob(userID, "text", text)
	job.Status = models.JobCorrecting

	result, err := h.pipeline.ProcessText(ctx, core.Request{
		Text:        text,
		Dictionary:  user.Dictionary,
		Instruction: user.GlobalPrompt,
	})
	if err != nil {
		job.Fail(err.Error())
		if h.storage != nil {
			if saveErr := h.storage.SaveJob(job); saveErr != nil {
				log.Printf("[mcp] failed to save job %s: %v", job.ID, saveErr)
			}
		}
		if errors.Is(err, core.ErrEmptyText) {
			return mcp.NewToolResultError("text is empty"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("proofreading failed: %v", err)), nil
	}

	job.Complete(result.CorrectedText, result.FactChanges)
	if h.storage != nil {
		if err := h.storage.SaveJob(job); err != nil {
			log.Printf("[mcp] failed to save job %s: %v", job.ID, err)
		}
	}

	factChanges := result.FactChanges
	if factChanges == nil {
		factChanges = []models.FactChange{}
	}
	response := map[string]interface{}{
		"job_id":         job.ID,
		"corrected_text": result.CorrectedText,
		"has_changes":    result.HasChanges,
		"fact_changes":   factChanges,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// DictionaryAdd handles the dictionary_add tool
func (h *Handlers) DictionaryAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError("word argument is required and must be a string"), nil
	}
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	added := user.AddWord(word)
	if added {
		if err := h.saveUser(user); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save dictionary: %v", err)), nil
		}
	}

	return jsonResult(map[string]interface{}{
		"added":      added,
		"word":       word,
		"dictionary": user.Dictionary,
	})
}

// DictionaryRemove handles the dictionary_remove tool
func (h *Handlers) DictionaryRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError("word argument is required and must be a string"), nil
	}
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	removed := user.RemoveWord(word)
	if removed {
		if err := h.saveUser(user); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save dictionary: %v", err)), nil
		}
	}

	return jsonResult(map[string]interface{}{
		"removed":    removed,
		"word":       word,
		"dictionary": user.Dictionary,
	})
}

// DictionaryList handles the dictionary_list tool
func (h *Handlers) DictionaryList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"dictionary": user.Dictionary,
	})
}

// InstructionSet handles the instruction_set tool
func (h *Handlers) InstructionSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instruction, err := request.RequireString("instruction")
	if err != nil {
		return mcp.NewToolResultError("instruction argument is required and must be a string"), nil
	}
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	user.GlobalPrompt = instruction
	if err := h.saveUser(user); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save instruction: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"instruction": user.GlobalPrompt,
	})
}

// InstructionClear handles the instruction_clear tool
func (h *Handlers) InstructionClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	user.GlobalPrompt = ""
	if err := h.saveUser(user); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear instruction: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"cleared": true,
	})
}

// InstructionShow handles the instruction_show tool
func (h *Handlers) InstructionShow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(request.GetInt("user_id", 0))

	user, err := h.loadUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load user: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"instruction": user.GlobalPrompt,
	})
}

// ListJobs handles the list_jobs tool
func (h *Handlers) ListJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.storage == nil {
		return mcp.NewToolResultError("job history is unavailable without storage"), nil
	}
	userID := int64(request.GetInt("user_id", 0))

	jobs, err := h.storage.ListJobs(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list jobs: %v", err)), nil
	}

	summaries := make([]map[string]interface{}, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, map[string]interface{}{
			"id":           job.ID,
			"status":       string(job.Status),
			"input_type":   job.InputType,
			"created_at":   job.CreatedAt.Format(time.RFC3339),
			"fact_changes": len(job.FactChanges),
		})
	}

	return jsonResult(map[string]interface{}{
		"jobs": summaries,
	})
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
