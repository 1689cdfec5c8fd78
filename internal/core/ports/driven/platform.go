package driven

import (
	"context"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// TargetListOptions filters the platform's target listing.
type TargetListOptions struct {
	// Limit is the page size for the listing call.
	Limit int

	// Origin restricts the listing to targets imported from one provider.
	Origin domain.Source

	// ExcludeEmpty drops targets that have no projects.
	ExcludeEmpty bool
}

// TargetLister lists an organisation's tracked repositories.
type TargetLister interface {
	// ListTargets returns all targets under the organisation matching
	// the options, following pagination to exhaustion.
	ListTargets(ctx context.Context, orgID string, opts TargetListOptions) ([]domain.Target, error)
}

// ProjectLister lists the projects tracked under a target.
type ProjectLister interface {
	// ListProjects returns every project belonging to the target.
	ListProjects(ctx context.Context, orgID, targetID string) ([]domain.Project, error)
}

// ProjectUpdater issues the single mutation this system performs:
// pointing a project at a different branch.
type ProjectUpdater interface {
	// UpdateProjectBranch sets the branch the platform monitors for the
	// project and returns the updated project.
	UpdateProjectBranch(ctx context.Context, orgID, projectID, branch string) (*domain.Project, error)
}

// FeatureFlagReader queries organisation-level feature flags.
type FeatureFlagReader interface {
	// FeatureFlagEnabled reports whether the named flag is enabled for
	// the organisation. Errors on org-not-found or missing permission.
	FeatureFlagEnabled(ctx context.Context, flag, orgID string) (bool, error)
}
