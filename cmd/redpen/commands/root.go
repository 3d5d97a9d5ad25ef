// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for proofread, dict, instruction, jobs, and mcp commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ███████╗██████╗ ██████╗ ███████╗███╗   ██╗
██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝████╗  ██║
██████╔╝█████╗  ██║  ██║██████╔╝█████╗  ██╔██╗ ██║
██╔══██╗██╔══╝  ██║  ██║██╔═══╝ ██╔══╝  ██║╚██╗██║
██║  ██║███████╗██████╔╝██║     ███████╗██║ ╚████║
╚═╝  ╚═╝╚══════╝╚═════╝ ╚═╝     ╚══════╝╚═╝  ╚═══╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redpen",
		Short: "LLM-powered proofreading with spell check and fact checking",
		Long: banner + `
Redpen runs text through a multi-pass correction pipeline: offline
spell check, chunked LLM grammar correction, full-document
verification, and fact checking backed by web search.

Corrected documents can be rendered as clean and tracked-changes
files via the document worker service.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")

	cmd.AddCommand(NewProofreadCmd())
	cmd.AddCommand(NewDictCmd())
	cmd.AddCommand(NewInstructionCmd())
	cmd.AddCommand(NewJobsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
