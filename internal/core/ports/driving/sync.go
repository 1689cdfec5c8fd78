package driving

import (
	"context"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// OrgSyncRequest describes one organisation-wide sync invocation.
type OrgSyncRequest struct {
	// OrgID is the organisation to synchronise.
	OrgID string

	// Sources are the requested providers. Filtered against the
	// supported set before any work is performed.
	Sources []domain.Source

	// DryRun computes and reports intended changes without issuing
	// update calls.
	DryRun bool
}

// OrgSyncer aligns every project in an organisation with its provider's
// current default branch.
type OrgSyncer interface {
	// UpdateOrgTargets runs the sync and returns the aggregated result.
	// Fatal errors (unsupported sources, feature-flag gate) are returned
	// before any target work is dispatched; target- and project-level
	// failures are reported through the result and the sync logs only.
	UpdateOrgTargets(ctx context.Context, req OrgSyncRequest) (*domain.OrgSyncResult, error)
}
