package platform

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Ensure Client implements the project ports.
var (
	_ driven.ProjectLister  = (*Client)(nil)
	_ driven.ProjectUpdater = (*Client)(nil)
)

// apiProject is the wire representation of a project.
type apiProject struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Origin  string    `json:"origin"`
	Type    string    `json:"type"`
	Created time.Time `json:"created"`
	Branch  *string   `json:"branch"`
}

func (p apiProject) toDomain() domain.Project {
	project := domain.Project{
		ID:        p.ID,
		Name:      p.Name,
		Origin:    domain.Source(p.Origin),
		Type:      p.Type,
		CreatedAt: p.Created,
	}
	if p.Branch != nil {
		project.Branch = *p.Branch
	}
	return project
}

// ListProjects returns every project belonging to the target.
func (c *Client) ListProjects(ctx context.Context, orgID, targetID string) ([]domain.Project, error) {
	var payload struct {
		Projects []apiProject `json:"projects"`
	}
	path := fmt.Sprintf("/orgs/%s/targets/%s/projects",
		url.PathEscape(orgID), url.PathEscape(targetID))
	if err := c.do(ctx, "GET", path, nil, &payload); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(payload.Projects))
	for _, p := range payload.Projects {
		projects = append(projects, p.toDomain())
	}
	return projects, nil
}

// UpdateProjectBranch points the project at a different branch and
// returns the updated project.
func (c *Client) UpdateProjectBranch(
	ctx context.Context,
	orgID, projectID, branch string,
) (*domain.Project, error) {
	body := struct {
		Branch string `json:"branch"`
	}{Branch: branch}

	var payload apiProject
	path := fmt.Sprintf("/orgs/%s/projects/%s", url.PathEscape(orgID), url.PathEscape(projectID))
	if err := c.do(ctx, "PATCH", path, body, &payload); err != nil {
		return nil, err
	}

	project := payload.toDomain()
	return &project, nil
}
