// ABOUTME: CLI commands for the standing correction instruction
// ABOUTME: The instruction is appended to the corrector prompt on every run
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"redpen/internal/config"
)

var instructionUser int64

// NewInstructionCmd creates the instruction command with its subcommands
func NewInstructionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instruction",
		Short: "Manage the standing correction instruction",
		Long: `Manage the standing correction instruction.

The instruction is free text appended to the corrector prompt on
every run, e.g. "keep informal tone" or "use British spelling".

Examples:
  redpen instruction
  redpen instruction set "сохраняй разговорный стиль"
  redpen instruction clear`,
		RunE: runInstructionShow,
	}

	cmd.PersistentFlags().Int64Var(&instructionUser, "user", 0, "Profile to use")

	setCmd := &cobra.Command{
		Use:   "set [instruction]",
		Short: "Set the instruction",
		Args:  cobra.ExactArgs(1),
		RunE:  runInstructionSet,
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the instruction",
		RunE:  runInstructionClear,
	}

	cmd.AddCommand(setCmd, clearCmd)
	return cmd
}

func runInstructionShow(cmd *cobra.Command, args []string) error {
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

	user, err := store.GetOrCreateUser(instructionUser)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	if user.GlobalPrompt == "" {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No instruction set. Set one with: redpen instruction set <text>")
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), user.GlobalPrompt)
	return nil
}

func runInstructionSet(cmd *cobra.Command, args []string) error {
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

	user, err := store.GetOrCreateUser(instructionUser)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	user.GlobalPrompt = args[0]
	if err := store.SaveUser(user); err != nil {
		return fmt.Errorf("saving instruction: %w", err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Instruction set")
	}
	return nil
}

func runInstructionClear(cmd *cobra.Command, args []string) error {
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

	user, err := store.GetOrCreateUser(instructionUser)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	user.GlobalPrompt = ""
	if err := store.SaveUser(user); err != nil {
		return fmt.Errorf("clearing instruction: %w", err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Instruction cleared")
	}
	return nil
}
