package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// repoCoordinates extracts the owner and repository name for a target.
// The remote URL is authoritative when present; targets imported before
// the platform recorded it fall back to the "owner/name" display name.
func repoCoordinates(target domain.Target) (owner, repo string, err error) {
	if target.RemoteURL != "" {
		if owner, repo, err = parseRemoteURL(target.RemoteURL); err == nil {
			return owner, repo, nil
		}
	}

	parts := strings.Split(target.DisplayName, "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1], nil
	}

	return "", "", fmt.Errorf("github: cannot determine repository for target %q", target.DisplayName)
}

func parseRemoteURL(remote string) (owner, repo string, err error) {
	u, err := url.Parse(remote)
	if err != nil {
		return "", "", fmt.Errorf("github: parse remote url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("github: remote url %q has no owner/repo path", remote)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
