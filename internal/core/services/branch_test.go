package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

func TestSyncProjectBranch_NoOpWhenBranchesMatch(t *testing.T) {
	updater := newMockProjectUpdater()
	project := domain.Project{ID: "p1", Branch: "main"}

	update, failure := syncProjectBranch(context.Background(), updater, "org-1", project, "main", false)

	assert.Nil(t, update)
	assert.Nil(t, failure)
	assert.Zero(t, updater.callCount())
}

func TestSyncProjectBranch_UpdatesOnDrift(t *testing.T) {
	updater := newMockProjectUpdater()
	project := domain.Project{ID: "p1", Branch: "master"}

	update, failure := syncProjectBranch(context.Background(), updater, "org-1", project, "develop", false)

	require.NotNil(t, update)
	assert.Nil(t, failure)
	assert.Equal(t, "p1", update.ProjectID)
	assert.Equal(t, "master", update.From)
	assert.Equal(t, "develop", update.To)
	assert.Equal(t, domain.UpdateKindBranch, update.Kind)
	assert.False(t, update.DryRun)

	// The mutation went through the platform.
	assert.Equal(t, "develop", updater.updated["p1"])
}

func TestSyncProjectBranch_DryRunNeverCallsUpdater(t *testing.T) {
	updater := newMockProjectUpdater()
	project := domain.Project{ID: "p1", Branch: "master"}

	update, failure := syncProjectBranch(context.Background(), updater, "org-1", project, "develop", true)

	require.NotNil(t, update)
	assert.Nil(t, failure)
	assert.True(t, update.DryRun)
	assert.Zero(t, updater.callCount())
}

func TestSyncProjectBranch_RejectionBecomesFailureRecord(t *testing.T) {
	updater := newMockProjectUpdater()
	updater.errs = map[string]error{"p1": errors.New("Error")}
	project := domain.Project{ID: "p1", Branch: "master"}

	update, failure := syncProjectBranch(context.Background(), updater, "org-1", project, "develop", false)

	assert.Nil(t, update)
	require.NotNil(t, failure)
	assert.Equal(t, "p1", failure.ProjectID)
	assert.Equal(t, "master", failure.From)
	assert.Equal(t, "develop", failure.To)
	assert.Equal(t, "Failed to update project p1 via API. ERROR: Error", failure.ErrorMessage)
}

func TestSyncProjectBranch_EmptyRecordedBranchCountsAsDrift(t *testing.T) {
	updater := newMockProjectUpdater()
	project := domain.Project{ID: "p1", Branch: ""}

	update, failure := syncProjectBranch(context.Background(), updater, "org-1", project, "main", false)

	require.NotNil(t, update)
	assert.Nil(t, failure)
	assert.Equal(t, "", update.From)
	assert.Equal(t, "main", update.To)
}
