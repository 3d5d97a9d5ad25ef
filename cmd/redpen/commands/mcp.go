// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to proofread text and manage preferences via stdio
package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"redpen/internal/config"
	"redpen/internal/mcp"
	"redpen/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs redpen as an MCP (Model Context Protocol) server over stdio,
exposing the proofreading pipeline, dictionary, and instruction
tools to agents.`,
		RunE: runMCPServe,
		Example: `  # Start MCP server (typically called by an agent host)
  redpen mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "redpen": {
  #       "command": "redpen",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("OPENAI_BASE_URL") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - correction and fact check will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	// The server still proofreads without storage; preferences and job
	// history are simply not persisted.
	var store *storage.Storage
	if s, err := openStorage(cfg); err != nil {
		log.Printf("Warning: storage unavailable: %v", err)
	} else {
		store = s
		defer func() { _ = store.Close() }()
	}

	server := mcpserver.NewMCPServer(
		"Redpen Proofreading",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, store, pipeline)

	log.Println("Redpen MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
