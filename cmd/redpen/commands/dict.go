// ABOUTME: CLI commands for the personal dictionary
// ABOUTME: Words in the dictionary are preserved as-is during correction
package commands

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"redpen/internal/config"
)

var dictUser int64

// NewDictCmd creates the dict command with its subcommands
func NewDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the personal dictionary",
		Long: `Manage the personal dictionary.

Dictionary words are passed to the corrector and preserved as-is,
so names, brands, and intentional spellings survive correction.

Examples:
  redpen dict list
  redpen dict add "Yandex"
  redpen dict remove "Yandex"`,
		RunE: runDictList,
	}

	cmd.PersistentFlags().Int64Var(&dictUser, "user", 0, "Profile to use")

	addCmd := &cobra.Command{
		Use:   "add [word]",
		Short: "Add a word to the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictAdd,
	}
	removeCmd := &cobra.Command{
		Use:   "remove [word]",
		Short: "Remove a word from the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictRemove,
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dictionary words",
		RunE:  runDictList,
	}

	cmd.AddCommand(addCmd, removeCmd, listCmd)
	return cmd
}

func runDictAdd(cmd *cobra.Command, args []string) error {
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

	user, err := store.GetOrCreateUser(dictUser)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	word := args[0]
	if !user.AddWord(word) {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%q is already in the dictionary\n", word)
		}
		return nil
	}
	if err := store.SaveUser(user); err != nil {
		return fmt.Errorf("saving dictionary: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q (%d words)\n", word, len(user.Dictionary))
	}
	return nil
}

func runDictRemove(cmd *cobra.Command, args []string) error {
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

	user, err := store.GetOrCreateUser(dictUser)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	word := args[0]
	if !user.RemoveWord(word) {
		return fmt.Errorf("%q is not in the dictionary", word)
	}
	if err := store.SaveUser(user); err != nil {
		return fmt.Errorf("saving dictionary: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %q (%d words)\n", word, len(user.Dictionary))
	}
	return nil
}

func runDictList(cmd *cobra.Command, args []string) error {
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

	user, err := store.GetOrCreateUser(dictUser)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	if len(user.Dictionary) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Dictionary is empty. Add words with: redpen dict add <word>")
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(user.Dictionary, "\n"))
	return nil
}
