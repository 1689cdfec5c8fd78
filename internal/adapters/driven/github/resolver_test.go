package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

func TestRepoCoordinates_FromRemoteURL(t *testing.T) {
	target := domain.Target{
		DisplayName: "different/name",
		RemoteURL:   "https://github.com/acme/app.git",
	}

	owner, repo, err := repoCoordinates(target)

	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "app", repo)
}

func TestRepoCoordinates_FallsBackToDisplayName(t *testing.T) {
	target := domain.Target{DisplayName: "acme/app"}

	owner, repo, err := repoCoordinates(target)

	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "app", repo)
}

func TestRepoCoordinates_BadRemoteURLFallsBack(t *testing.T) {
	target := domain.Target{
		DisplayName: "acme/app",
		RemoteURL:   "https://github.com/",
	}

	owner, repo, err := repoCoordinates(target)

	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "app", repo)
}

func TestRepoCoordinates_Unresolvable(t *testing.T) {
	target := domain.Target{DisplayName: "just-a-name"}

	_, _, err := repoCoordinates(target)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "just-a-name")
}

func TestParseRemoteURL_EnterprisePath(t *testing.T) {
	owner, repo, err := parseRemoteURL("https://ghe.example.com/acme/app")

	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "app", repo)
}
