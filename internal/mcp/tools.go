// ABOUTME: MCP tool definitions and registration for the proofreading server
// ABOUTME: Defines JSON schemas for the proofread, dictionary, and instruction tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"redpen/internal/core"
	"redpen/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, pipeline *core.Pipeline) *Handlers {
	handlers := &Handlers{
		storage:  store,
		pipeline: pipeline,
	}

	userIDProp := map[string]interface{}{
		"type":        "number",
		"description": "Profile to use. Omit for the default profile.",
		"default":     0,
	}

	// 1. proofread_text - run the full correction pipeline on a text
	server.AddTool(mcp.Tool{
		Name:        "proofread_text",
		Description: "Run the full proofreading pipeline on a text: spell check, grammar correction, verification, and fact checking with web search. Returns the corrected text and any factual corrections.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to proofread",
				},
				"user_id": userIDProp,
			},
			Required: []string{"text"},
		},
	}, handlers.ProofreadText)

	// 2. dictionary_add - add a word to the personal dictionary
	server.AddTool(mcp.Tool{
		Name:        "dictionary_add",
		Description: "Add a word to the personal dictionary. Dictionary words are preserved as-is during correction.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to add",
				},
				"user_id": userIDProp,
			},
			Required: []string{"word"},
		},
	}, handlers.DictionaryAdd)

	// 3. dictionary_remove - remove a word from the personal dictionary
	server.AddTool(mcp.Tool{
		Name:        "dictionary_remove",
		Description: "Remove a word from the personal dictionary.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to remove",
				},
				"user_id": userIDProp,
			},
			Required: []string{"word"},
		},
	}, handlers.DictionaryRemove)

	// 4. dictionary_list - list the personal dictionary
	server.AddTool(mcp.Tool{
		Name:        "dictionary_list",
		Description: "List all words in the personal dictionary.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": userIDProp,
			},
		},
	}, handlers.DictionaryList)

	// 5. instruction_set - set the standing correction instruction
	server.AddTool(mcp.Tool{
		Name:        "instruction_set",
		Description: "Set a standing instruction applied to every correction (e.g., 'keep informal tone', 'use British spelling').",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"instruction": map[string]interface{}{
					"type":        "string",
					"description": "Instruction text",
				},
				"user_id": userIDProp,
			},
			Required: []string{"instruction"},
		},
	}, handlers.InstructionSet)

	// 6. instruction_clear - clear the standing instruction
	server.AddTool(mcp.Tool{
		Name:        "instruction_clear",
		Description: "Clear the standing correction instruction.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": userIDProp,
			},
		},
	}, handlers.InstructionClear)

	// 7. instruction_show - show the standing instruction
	server.AddTool(mcp.Tool{
		Name:        "instruction_show",
		Description: "Show the current standing correction instruction.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": userIDProp,
			},
		},
	}, handlers.InstructionShow)

	// 8. list_jobs - list past proofreading runs
	server.AddTool(mcp.Tool{
		Name:        "list_jobs",
		Description: "List past proofreading runs, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": userIDProp,
			},
		},
	}, handlers.ListJobs)

	return handlers
}
