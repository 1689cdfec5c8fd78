package driven

import (
	"context"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// SyncHistoryStore persists completed sync runs for audit.
type SyncHistoryStore interface {
	// SaveRun stores a completed run with its per-project outcomes.
	SaveRun(ctx context.Context, run domain.SyncRun) error

	// GetRun retrieves a run and its outcomes by id.
	// Returns domain.ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, runID string) (*domain.SyncRun, error)

	// ListRuns returns up to limit runs for the organisation,
	// most recent first, without their per-project outcomes.
	ListRuns(ctx context.Context, orgID string, limit int) ([]domain.SyncRun, error)

	// Close releases the store's resources.
	Close() error
}
