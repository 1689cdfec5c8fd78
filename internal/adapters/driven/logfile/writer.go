// Package logfile appends sync outcomes to durable per-run log files,
// one JSON record per line. The files are append-only: reruns extend
// them, they are never truncated.
package logfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Ensure Writer implements the port.
var _ driven.SyncLogWriter = (*Writer)(nil)

// Writer appends JSON-line records to the sync log files in dir.
// An empty dir writes bare file names relative to the working
// directory, matching the orchestrator's path-resolution fallback.
type Writer struct {
	mu  sync.Mutex
	dir string
}

// NewWriter creates a writer for the given logging directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// updateEntry is the line format shared by updated and failed records.
type updateEntry struct {
	OrgID        string    `json:"orgId"`
	ProjectID    string    `json:"projectId"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Kind         string    `json:"type"`
	DryRun       bool      `json:"dryRun"`
	Target       string    `json:"target,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	LoggedAt     time.Time `json:"loggedAt"`
}

type failedSyncEntry struct {
	OrgID    string    `json:"orgId"`
	Target   string    `json:"target"`
	Message  string    `json:"message"`
	LoggedAt time.Time `json:"loggedAt"`
}

// LogUpdatedProjects appends one line per applied or simulated update.
func (w *Writer) LogUpdatedProjects(_ context.Context, orgID string, updates []domain.ProjectUpdate) error {
	entries := make([]any, 0, len(updates))
	now := time.Now().UTC()
	for _, u := range updates {
		entries = append(entries, updateEntry{
			OrgID:     orgID,
			ProjectID: u.ProjectID,
			From:      u.From,
			To:        u.To,
			Kind:      string(u.Kind),
			DryRun:    u.DryRun,
			Target:    targetName(u.Target),
			LoggedAt:  now,
		})
	}
	return w.append(driven.UpdatedProjectsLogName, entries)
}

// LogFailedUpdates appends one line per rejected update call.
func (w *Writer) LogFailedUpdates(_ context.Context, orgID string, failures []domain.ProjectUpdateFailure) error {
	entries := make([]any, 0, len(failures))
	now := time.Now().UTC()
	for _, f := range failures {
		entries = append(entries, updateEntry{
			OrgID:        orgID,
			ProjectID:    f.ProjectID,
			From:         f.From,
			To:           f.To,
			Kind:         string(f.Kind),
			DryRun:       f.DryRun,
			Target:       targetName(f.Target),
			ErrorMessage: f.ErrorMessage,
			LoggedAt:     now,
		})
	}
	return w.append(driven.FailedUpdatesLogName, entries)
}

// LogFailedSync appends one line for a target that could not be synced.
func (w *Writer) LogFailedSync(_ context.Context, orgID string, target domain.Target, message string) error {
	return w.append(driven.FailedSyncLogName, []any{failedSyncEntry{
		OrgID:    orgID,
		Target:   target.DisplayName,
		Message:  message,
		LoggedAt: time.Now().UTC(),
	}})
}

// append serialises concurrent target tasks onto one file handle per
// call. Lines are written in one batch per invocation.
func (w *Writer) append(fileName string, entries []any) error {
	if len(entries) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := fileName
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0o700); err != nil {
			return fmt.Errorf("create logging directory: %w", err)
		}
		path = filepath.Join(w.dir, fileName)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("append log entry: %w", err)
		}
	}
	return nil
}

func targetName(t *domain.Target) string {
	if t == nil {
		return ""
	}
	return t.DisplayName
}
