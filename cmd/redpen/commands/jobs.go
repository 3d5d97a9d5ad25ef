// ABOUTME: CLI command to list past proofreading runs
// ABOUTME: Shows job status, input type, and fact-change counts
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"redpen/internal/config"
)

var jobsUser int64

// NewJobsCmd creates the jobs command
func NewJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List past proofreading runs",
		Long: `List past proofreading runs, newest first.

Examples:
  redpen jobs
  redpen jobs --format json`,
		RunE: runJobs,
	}

	cmd.Flags().Int64Var(&jobsUser, "user", 0, "Profile to use")
	return cmd
}

func runJobs(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	jobs, err := store.ListJobs(jobsUser)
	if err != nil {
		return fmt.Errorf("listing jobs: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(jobs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if len(jobs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No jobs yet. Run: redpen proofread <text>")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSTATUS\tINPUT\tFACTS\tCREATED\tTEXT\n")
	for _, job := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			job.ID[:8],
			job.Status,
			job.InputType,
			len(job.FactChanges),
			formatTime(job.CreatedAt),
			truncate(job.OriginalText, 40),
		)
	}
	return w.Flush()
}
