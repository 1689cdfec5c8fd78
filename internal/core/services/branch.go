package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// syncProjectBranch decides whether one project's recorded branch has
// drifted from the provider's default branch and, unless dryRun, applies
// the change through the platform.
//
// Returns (nil, nil) when the branches already match. A rejected update
// call is converted to a ProjectUpdateFailure carrying the upstream
// message; it never surfaces as an error to the caller.
func syncProjectBranch(
	ctx context.Context,
	updater driven.ProjectUpdater,
	orgID string,
	project domain.Project,
	defaultBranch string,
	dryRun bool,
) (*domain.ProjectUpdate, *domain.ProjectUpdateFailure) {
	if project.Branch == defaultBranch {
		return nil, nil
	}

	update := domain.ProjectUpdate{
		ProjectID: project.ID,
		From:      project.Branch,
		To:        defaultBranch,
		Kind:      domain.UpdateKindBranch,
		DryRun:    dryRun,
	}

	if dryRun {
		return &update, nil
	}

	if _, err := updater.UpdateProjectBranch(ctx, orgID, project.ID, defaultBranch); err != nil {
		return nil, &domain.ProjectUpdateFailure{
			ProjectID:    project.ID,
			From:         project.Branch,
			To:           defaultBranch,
			Kind:         domain.UpdateKindBranch,
			DryRun:       dryRun,
			ErrorMessage: fmt.Sprintf("Failed to update project %s via API. ERROR: %s", project.ID, err.Error()),
		}
	}

	return &update, nil
}
