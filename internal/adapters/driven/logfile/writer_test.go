package logfile

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestLogUpdatedProjects_AppendsOneLinePerUpdate(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	target := &domain.Target{DisplayName: "acme/app"}
	err := w.LogUpdatedProjects(context.Background(), "org-1", []domain.ProjectUpdate{
		{ProjectID: "p1", From: "master", To: "develop", Kind: domain.UpdateKindBranch, Target: target},
		{ProjectID: "p2", From: "main", To: "develop", Kind: domain.UpdateKindBranch, DryRun: true, Target: target},
	})

	require.NoError(t, err)

	lines := readLines(t, filepath.Join(dir, driven.UpdatedProjectsLogName))
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0]["projectId"])
	assert.Equal(t, "master", lines[0]["from"])
	assert.Equal(t, "develop", lines[0]["to"])
	assert.Equal(t, "branch", lines[0]["type"])
	assert.Equal(t, "acme/app", lines[0]["target"])
	assert.Equal(t, true, lines[1]["dryRun"])
}

func TestLogUpdatedProjects_AppendsAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	ctx := context.Background()
	require.NoError(t, w.LogUpdatedProjects(ctx, "org-1", []domain.ProjectUpdate{{ProjectID: "p1"}}))
	require.NoError(t, w.LogUpdatedProjects(ctx, "org-1", []domain.ProjectUpdate{{ProjectID: "p2"}}))

	lines := readLines(t, filepath.Join(dir, driven.UpdatedProjectsLogName))
	assert.Len(t, lines, 2)
}

func TestLogFailedUpdates_CarriesErrorMessage(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	err := w.LogFailedUpdates(context.Background(), "org-1", []domain.ProjectUpdateFailure{
		{ProjectID: "p1", From: "master", To: "develop", ErrorMessage: "Failed to update project p1 via API. ERROR: Error"},
	})

	require.NoError(t, err)

	lines := readLines(t, filepath.Join(dir, driven.FailedUpdatesLogName))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0]["errorMessage"], "p1")
}

func TestLogFailedSync(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	target := domain.Target{DisplayName: "acme/broken"}
	err := w.LogFailedSync(context.Background(), "org-1", target, "list projects: boom")

	require.NoError(t, err)

	lines := readLines(t, filepath.Join(dir, driven.FailedSyncLogName))
	require.Len(t, lines, 1)
	assert.Equal(t, "acme/broken", lines[0]["target"])
	assert.Equal(t, "org-1", lines[0]["orgId"])
	assert.Contains(t, lines[0]["message"], "boom")
}

func TestAppend_EmptyBatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.LogUpdatedProjects(context.Background(), "org-1", nil))

	_, err := os.Stat(filepath.Join(dir, driven.UpdatedProjectsLogName))
	assert.True(t, os.IsNotExist(err))
}

func TestNewWriter_CreatesDirectoryOnDemand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w := NewWriter(dir)

	err := w.LogUpdatedProjects(context.Background(), "org-1", []domain.ProjectUpdate{{ProjectID: "p1"}})

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, driven.UpdatedProjectsLogName))
}
