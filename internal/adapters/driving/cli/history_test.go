package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// mockHistoryStore implements driven.SyncHistoryStore for testing.
type mockHistoryStore struct {
	runs   []domain.SyncRun
	run    *domain.SyncRun
	getErr error
}

func (m *mockHistoryStore) SaveRun(_ context.Context, _ domain.SyncRun) error { return nil }

func (m *mockHistoryStore) GetRun(_ context.Context, _ string) (*domain.SyncRun, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.run, nil
}

func (m *mockHistoryStore) ListRuns(_ context.Context, _ string, _ int) ([]domain.SyncRun, error) {
	return m.runs, nil
}

func (m *mockHistoryStore) Close() error { return nil }

func setupHistoryTest(t *testing.T, mock *mockHistoryStore) {
	t.Helper()

	oldStore := historyStore
	historyStore = mock
	t.Cleanup(func() {
		historyStore = oldStore
		historyLimit = 20
		rootCmd.SetArgs(nil)
	})
}

func TestHistoryListCmd_Empty(t *testing.T) {
	setupHistoryTest(t, &mockHistoryStore{})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "list", "org-1"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No recorded runs.")
}

func TestHistoryListCmd_ListsRuns(t *testing.T) {
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	setupHistoryTest(t, &mockHistoryStore{runs: []domain.SyncRun{
		{ID: "run-1", OrgID: "org-1", ProcessedTargets: 4, StartedAt: started, DryRun: true},
	}})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "list", "org-1"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run-1")
	assert.Contains(t, buf.String(), "4 targets")
	assert.Contains(t, buf.String(), "(dry run)")
}

func TestHistoryShowCmd_NotFound(t *testing.T) {
	setupHistoryTest(t, &mockHistoryStore{getErr: domain.ErrNotFound})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history", "show", "missing"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryShowCmd_PrintsOutcomes(t *testing.T) {
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	setupHistoryTest(t, &mockHistoryStore{run: &domain.SyncRun{
		ID:               "run-1",
		OrgID:            "org-1",
		ProcessedTargets: 1,
		StartedAt:        started,
		FinishedAt:       started.Add(2 * time.Second),
		Projects: domain.ProjectsMeta{
			Updated: []domain.ProjectUpdate{
				{ProjectID: "p1", From: "master", To: "develop", Target: &domain.Target{DisplayName: "acme/app"}},
			},
			Failed: []domain.ProjectUpdateFailure{
				{ProjectID: "p2", ErrorMessage: "Failed to update project p2 via API. ERROR: Not Found"},
			},
		},
	}})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "show", "run-1"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Run run-1 for org org-1")
	assert.Contains(t, out, "p1  master -> develop  acme/app")
	assert.Contains(t, out, "Failed to update project p2 via API")
}
