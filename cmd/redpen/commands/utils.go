// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Format detection, storage helpers, and display formatting
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"redpen/internal/charm"
	"redpen/internal/config"
	"redpen/internal/core"
	"redpen/internal/models"
	"redpen/internal/storage"
)

// formatFromExtension maps a file name to its input format.
func formatFromExtension(name string) (models.InputFormat, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return models.FormatDocx, true
	case ".doc":
		return models.FormatDoc, true
	case ".txt":
		return models.FormatTxt, true
	case ".md":
		return models.FormatMd, true
	case ".pdf":
		return models.FormatPdf, true
	}
	return "", false
}

// openStorage opens the charm-backed store using the loaded config.
func openStorage(cfg *config.Config) (*storage.Storage, error) {
	kv, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return storage.NewStorageWithClient(kv), nil
}

// loadUserOrDefault returns the stored user record, falling back to an
// in-memory default when storage is unavailable. The returned storage is
// nil in the fallback case.
func loadUserOrDefault(cfg *config.Config, userID int64) (*storage.Storage, *models.User) {
	store, err := openStorage(cfg)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: storage unavailable: %v\n", err)
		}
		return nil, models.NewUser(userID)
	}
	user, err := store.GetOrCreateUser(userID)
	if err != nil {
		_ = store.Close()
		return nil, models.NewUser(userID)
	}
	return store, user
}

// pipelineRequest builds a pipeline request from a user's preferences.
func pipelineRequest(text string, user *models.User) core.Request {
	return core.Request{
		Text:        text,
		Dictionary:  user.Dictionary,
		Instruction: user.GlobalPrompt,
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}
