// ABOUTME: User and job repositories over the charm KV store
// ABOUTME: Users hold proofreading preferences; jobs record past pipeline runs
package storage

import (
	"fmt"
	"sort"

	"redpen/internal/charm"
	"redpen/internal/models"
)

// Storage provides the user and job repositories used by the CLI and the
// MCP server. The pipeline core never touches it; callers load a user,
// run the pipeline, and store the outcome.
type Storage struct {
	kv *charm.Client
}

// NewStorage opens the charm-backed store with default configuration.
func NewStorage() (*Storage, error) {
	kv, err := charm.NewClient(charm.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return &Storage{kv: kv}, nil
}

// NewStorageWithClient wraps an existing charm client (used by tests).
func NewStorageWithClient(kv *charm.Client) *Storage {
	return &Storage{kv: kv}
}

// Close releases the underlying KV store.
func (s *Storage) Close() error {
	return s.kv.Close()
}

// GetUser loads a user record. Returns nil without error when the user
// has no stored record yet.
func (s *Storage) GetUser(userID int64) (*models.User, error) {
	var user models.User
	if err := s.kv.GetJSON(charm.UserKey(userID), &user); err != nil {
		// Missing records are not an error; the caller gets defaults.
		return nil, nil
	}
	return &user, nil
}

// GetOrCreateUser loads a user record, creating a fresh one if absent.
func (s *Storage) GetOrCreateUser(userID int64) (*models.User, error) {
	if user, _ := s.GetUser(userID); user != nil {
		return user, nil
	}
	user := models.NewUser(userID)
	if err := s.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SaveUser persists a user record.
func (s *Storage) SaveUser(user *models.User) error {
	if err := s.kv.SetJSON(charm.UserKey(user.ID), user); err != nil {
		return fmt.Errorf("saving user %d: %w", user.ID, err)
	}
	return nil
}

// SaveJob persists a job record under its owner's prefix.
func (s *Storage) SaveJob(job *models.Job) error {
	if err := s.kv.SetJSON(charm.JobKey(job.UserID, job.ID), job); err != nil {
		return fmt.Errorf("saving job %s: %w", job.ID, err)
	}
	return nil
}

// GetJob loads one job record.
func (s *Storage) GetJob(userID int64, jobID string) (*models.Job, error) {
	var job models.Job
	if err := s.kv.GetJSON(charm.JobKey(userID, jobID), &job); err != nil {
		return nil, fmt.Errorf("loading job %s: %w", jobID, err)
	}
	return &job, nil
}

// ListJobs returns a user's jobs, newest first.
func (s *Storage) ListJobs(userID int64) ([]*models.Job, error) {
	keys, err := s.kv.ListKeys(charm.UserJobsPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	jobs := make([]*models.Job, 0, len(keys))
	for _, key := range keys {
		var job models.Job
		if err := s.kv.GetJSON(key, &job); err != nil {
			continue
		}
		jobs = append(jobs, &job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// DeleteJob removes one job record.
func (s *Storage) DeleteJob(userID int64, jobID string) error {
	return s.kv.Delete(charm.JobKey(userID, jobID))
}
