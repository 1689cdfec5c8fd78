package driven

import (
	"context"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
)

// SourceHandler is the provider-side capability bundle for one source:
// a configuration check and a default-branch lookup. Each supported
// source registers its own handler; the orchestrator's control flow
// never branches on the source identifier itself.
type SourceHandler interface {
	// Source returns the provider this handler serves.
	Source() domain.Source

	// Configured verifies the provider's credentials and environment are
	// present. Returns an error wrapping domain.ErrSourceNotConfigured
	// when they are not.
	Configured() error

	// DefaultBranch returns the branch the provider currently designates
	// as primary for the target's repository. One call per target,
	// regardless of project count.
	DefaultBranch(ctx context.Context, target domain.Target) (string, error)
}

// SourceHandlerRegistry resolves the handler for a source.
type SourceHandlerRegistry interface {
	// Handler returns the registered handler for the source, or
	// domain.ErrUnsupportedSource if none is registered.
	Handler(source domain.Source) (SourceHandler, error)
}
