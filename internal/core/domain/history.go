package domain

import "time"

// SyncRun is the durable audit record of one organisation-wide sync.
// Recording runs is best-effort and never affects the run's outcome.
type SyncRun struct {
	// ID is a generated identifier for the run.
	ID string

	// OrgID is the organisation the run was executed against.
	OrgID string

	// Sources are the providers the run covered, after filtering to the
	// supported set.
	Sources []Source

	// DryRun is true when no update calls were issued.
	DryRun bool

	// ProcessedTargets counts targets that completed without error.
	ProcessedTargets int

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Projects carries the per-project outcomes of the run.
	Projects ProjectsMeta
}
