// ABOUTME: CLI command to run the proofreading pipeline on text or a file
// ABOUTME: Handles text, stdin, and document input with optional docx output
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"redpen/internal/config"
	"redpen/internal/models"
	"redpen/internal/worker"
)

var (
	proofreadFile   string
	proofreadOutDir string
	proofreadUser   int64
)

// NewProofreadCmd creates the proofread command
func NewProofreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proofread [text]",
		Short: "Proofread a text or document",
		Long: `Run a text through the full correction pipeline.

Input can be inline text, a file, or stdin. For docx, doc, and pdf
files the document worker extracts the text and renders corrected
documents next to the original.

Examples:
  redpen proofread "В 1942 году Гагарин полетел в космос."
  redpen proofread --file draft.docx
  cat draft.txt | redpen proofread`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProofread,
	}

	cmd.Flags().StringVar(&proofreadFile, "file", "", "Read text from file")
	cmd.Flags().StringVar(&proofreadOutDir, "output-dir", ".", "Directory for generated documents")
	cmd.Flags().Int64Var(&proofreadUser, "user", 0, "Profile to use")

	return cmd
}

func runProofread(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := cmd.Context()

	var text string
	inputType := "text"
	var inputFormat models.InputFormat
	if proofreadFile != "" {
		data, err := os.ReadFile(proofreadFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		format, ok := formatFromExtension(proofreadFile)
		if !ok {
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(proofreadFile))
		}
		inputType = "file"
		inputFormat = format

		switch format {
		case models.FormatTxt, models.FormatMd:
			text = string(data)
		default:
			if cfg.WorkerURL == "" {
				return fmt.Errorf("WORKER_URL must be set to parse %s files", format)
			}
			text, err = worker.NewClient(cfg.WorkerURL).ParseFile(ctx, data, format)
			if err != nil {
				return fmt.Errorf("parsing file: %w", err)
			}
		}
	} else if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("no text provided")
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	// Storage is optional for the CLI; proofreading works without it,
	// just without a saved dictionary or job history.
	store, user := loadUserOrDefault(cfg, proofreadUser)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	job := models.NewJob(proofreadUser, inputType, text)
	job.InputFormat = inputFormat
	job.Status = models.JobCorrecting

	result, err := pipeline.ProcessText(ctx, pipelineRequest(text, user))
	if err != nil {
		job.Fail(err.Error())
		if store != nil {
			_ = store.SaveJob(job)
		}
		return fmt.Errorf("proofreading: %w", err)
	}

	job.Complete(result.CorrectedText, result.FactChanges)
	if store != nil {
		if err := store.SaveJob(job); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not save job: %v\n", err)
		}
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		payload := map[string]interface{}{
			"job_id":         job.ID,
			"corrected_text": result.CorrectedText,
			"has_changes":    result.HasChanges,
			"fact_changes":   result.FactChanges,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
	} else {
		fmt.Fprintln(out, result.CorrectedText)
		if len(result.FactChanges) > 0 && !quiet {
			fmt.Fprintf(out, "\nFactual corrections (%d):\n", len(result.FactChanges))
			for _, change := range result.FactChanges {
				fmt.Fprintf(out, "  %q -> %q", change.Original, change.Corrected)
				if change.Source != "" {
					fmt.Fprintf(out, " (%s)", change.Source)
				}
				fmt.Fprintln(out)
			}
		}
	}

	if len(result.CleanDoc) > 0 {
		base := "proofread"
		if proofreadFile != "" {
			base = strings.TrimSuffix(filepath.Base(proofreadFile), filepath.Ext(proofreadFile))
		}
		cleanPath := filepath.Join(proofreadOutDir, base+".corrected.docx")
		diffPath := filepath.Join(proofreadOutDir, base+".changes.docx")
		if err := os.WriteFile(cleanPath, result.CleanDoc, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cleanPath, err)
		}
		if err := os.WriteFile(diffPath, result.DiffDoc, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", diffPath, err)
		}
		if !quiet {
			fmt.Fprintf(out, "\nDocuments written: %s, %s\n", cleanPath, diffPath)
		}
	}

	return nil
}
