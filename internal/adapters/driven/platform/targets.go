package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Ensure Client implements the lister port.
var _ driven.TargetLister = (*Client)(nil)

// apiTarget is the wire representation of a target.
type apiTarget struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsPrivate   bool   `json:"isPrivate"`
	Origin      string `json:"origin"`
	RemoteURL   string `json:"remoteUrl"`
}

func (t apiTarget) toDomain(orgID string) domain.Target {
	return domain.Target{
		ID:          t.ID,
		DisplayName: t.DisplayName,
		Private:     t.IsPrivate,
		Origin:      domain.Source(t.Origin),
		RemoteURL:   t.RemoteURL,
		OrgID:       orgID,
	}
}

// ListTargets returns all targets under the organisation matching the
// options, following pagination until a short page.
func (c *Client) ListTargets(
	ctx context.Context,
	orgID string,
	opts driven.TargetListOptions,
) ([]domain.Target, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	var all []domain.Target

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("limit", fmt.Sprintf("%d", limit))
		query.Set("page", fmt.Sprintf("%d", page))
		if opts.Origin != "" {
			query.Set("origin", opts.Origin.String())
		}
		if opts.ExcludeEmpty {
			query.Set("excludeEmpty", "true")
		}

		var payload struct {
			Targets []apiTarget `json:"targets"`
		}
		path := fmt.Sprintf("/orgs/%s/targets?%s", url.PathEscape(orgID), query.Encode())
		if err := c.do(ctx, "GET", path, nil, &payload); err != nil {
			return nil, err
		}

		for _, t := range payload.Targets {
			all = append(all, t.toDomain(orgID))
		}

		if len(payload.Targets) < limit {
			return all, nil
		}
	}
}
