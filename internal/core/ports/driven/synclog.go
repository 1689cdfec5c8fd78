package driven

import (
	"context"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// Fixed file names for the sync log files. The orchestrator joins these
// with the resolved logging directory; when resolution fails it falls
// back to the bare names.
const (
	// UpdatedProjectsLogName is the updated-projects log file name.
	UpdatedProjectsLogName = "updated-projects.log"

	// FailedUpdatesLogName is the failed-to-update-projects log file name.
	FailedUpdatesLogName = "failed-to-update-projects.log"

	// FailedSyncLogName is the failed-to-sync-targets log file name.
	FailedSyncLogName = "failed-to-sync-targets.log"
)

// SyncLogWriter appends sync outcomes to durable per-organisation logs.
// All methods are append-only and fire-and-forget from the core's
// perspective: they are awaited, but their persistence failures are not
// the core's concern.
type SyncLogWriter interface {
	// LogUpdatedProjects appends one entry per applied or simulated
	// branch change.
	LogUpdatedProjects(ctx context.Context, orgID string, updates []domain.ProjectUpdate) error

	// LogFailedUpdates appends one entry per rejected update call.
	LogFailedUpdates(ctx context.Context, orgID string, failures []domain.ProjectUpdateFailure) error

	// LogFailedSync appends one entry for a target that could not be
	// synchronised at all.
	LogFailedSync(ctx context.Context, orgID string, target domain.Target, message string) error
}

// LogPathResolver resolves the directory sync logs are written to.
type LogPathResolver interface {
	// LoggingPath returns the configured logging directory. May error
	// when no directory is configured or it cannot be created.
	LoggingPath() (string, error)
}
