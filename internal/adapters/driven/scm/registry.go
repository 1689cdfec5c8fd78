// Package scm holds the closed registry mapping each supported source
// to its capability handler. Adding a provider means registering a new
// handler here; the orchestrator's control flow never changes.
package scm

import (
	"fmt"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// Ensure Registry implements the port.
var _ driven.SourceHandlerRegistry = (*Registry)(nil)

// Registry resolves source handlers by provider.
type Registry struct {
	handlers map[domain.Source]driven.SourceHandler
}

// NewRegistry creates a registry over the given handlers.
func NewRegistry(handlers ...driven.SourceHandler) *Registry {
	r := &Registry{handlers: make(map[domain.Source]driven.SourceHandler, len(handlers))}
	for _, h := range handlers {
		r.handlers[h.Source()] = h
	}
	return r
}

// Handler returns the registered handler for the source.
func (r *Registry) Handler(source domain.Source) (driven.SourceHandler, error) {
	h, ok := r.handlers[source]
	if !ok {
		return nil, fmt.Errorf("%w: no handler registered for %q", domain.ErrUnsupportedSource, source)
	}
	return h, nil
}
