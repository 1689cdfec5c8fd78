package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Ensure Client implements the flag reader port.
var _ driven.FeatureFlagReader = (*Client)(nil)

// FeatureFlagEnabled reports whether the named flag is enabled for the
// organisation. A 404 or 403 from the platform surfaces as an error, so
// callers can distinguish "flag off" from "org not visible".
func (c *Client) FeatureFlagEnabled(ctx context.Context, flag, orgID string) (bool, error) {
	var payload struct {
		Enabled bool `json:"enabled"`
	}
	path := fmt.Sprintf("/orgs/%s/features/%s", url.PathEscape(orgID), url.PathEscape(flag))
	if err := c.do(ctx, "GET", path, nil, &payload); err != nil {
		return false, err
	}
	return payload.Enabled, nil
}
