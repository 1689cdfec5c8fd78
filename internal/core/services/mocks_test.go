package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
)

// --- Shared mock collaborators for the sync engine tests ---

// mockProjectLister implements driven.ProjectLister.
type mockProjectLister struct {
	projects map[string][]domain.Project // keyed by target id
	errs     map[string]error            // keyed by target id

	mu    sync.Mutex
	calls int
}

func (m *mockProjectLister) ListProjects(_ context.Context, _, targetID string) ([]domain.Project, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err := m.errs[targetID]; err != nil {
		return nil, err
	}
	return m.projects[targetID], nil
}

// mockProjectUpdater implements driven.ProjectUpdater with call tracking.
type mockProjectUpdater struct {
	errs map[string]error // keyed by project id

	mu      sync.Mutex
	updated map[string]string // project id -> branch set
}

func newMockProjectUpdater() *mockProjectUpdater {
	return &mockProjectUpdater{updated: make(map[string]string)}
}

func (m *mockProjectUpdater) UpdateProjectBranch(
	_ context.Context, _, projectID, branch string,
) (*domain.Project, error) {
	if err := m.errs[projectID]; err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated[projectID] = branch

	return &domain.Project{ID: projectID, Branch: branch}, nil
}

func (m *mockProjectUpdater) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updated)
}

// mockSourceHandler implements driven.SourceHandler.
type mockSourceHandler struct {
	source        domain.Source
	branches      map[string]string // target id -> default branch
	branchErrs    map[string]error  // target id -> error
	configuredErr error
}

func (m *mockSourceHandler) Source() domain.Source { return m.source }

func (m *mockSourceHandler) Configured() error { return m.configuredErr }

func (m *mockSourceHandler) DefaultBranch(_ context.Context, target domain.Target) (string, error) {
	if err := m.branchErrs[target.ID]; err != nil {
		return "", err
	}
	return m.branches[target.ID], nil
}

// mockHandlerRegistry implements driven.SourceHandlerRegistry.
type mockHandlerRegistry struct {
	handlers map[domain.Source]driven.SourceHandler
}

func newMockHandlerRegistry(handlers ...driven.SourceHandler) *mockHandlerRegistry {
	r := &mockHandlerRegistry{handlers: make(map[domain.Source]driven.SourceHandler)}
	for _, h := range handlers {
		r.handlers[h.Source()] = h
	}
	return r
}

func (r *mockHandlerRegistry) Handler(source domain.Source) (driven.SourceHandler, error) {
	if h, ok := r.handlers[source]; ok {
		return h, nil
	}
	return nil, domain.ErrUnsupportedSource
}

// mockSyncLog implements driven.SyncLogWriter with call tracking.
// Appends happen from concurrent target tasks, so it locks.
type mockSyncLog struct {
	mu           sync.Mutex
	updatedCalls [][]domain.ProjectUpdate
	failedCalls  [][]domain.ProjectUpdateFailure
	failedSyncs  []string // target display names
}

func (m *mockSyncLog) LogUpdatedProjects(_ context.Context, _ string, updates []domain.ProjectUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updatedCalls = append(m.updatedCalls, updates)
	return nil
}

func (m *mockSyncLog) LogFailedUpdates(_ context.Context, _ string, failures []domain.ProjectUpdateFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedCalls = append(m.failedCalls, failures)
	return nil
}

func (m *mockSyncLog) LogFailedSync(_ context.Context, _ string, target domain.Target, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedSyncs = append(m.failedSyncs, target.DisplayName)
	return nil
}

func (m *mockSyncLog) updatedCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updatedCalls)
}

// mockTargetLister implements driven.TargetLister.
type mockTargetLister struct {
	targets []domain.Target
	err     error

	mu       sync.Mutex
	calls    int
	lastOpts driven.TargetListOptions
}

func (m *mockTargetLister) ListTargets(
	_ context.Context, _ string, opts driven.TargetListOptions,
) ([]domain.Target, error) {
	m.mu.Lock()
	m.calls++
	m.lastOpts = opts
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.targets, nil
}

// mockFlagReader implements driven.FeatureFlagReader.
type mockFlagReader struct {
	enabled bool
	err     error
}

func (m *mockFlagReader) FeatureFlagEnabled(_ context.Context, _, _ string) (bool, error) {
	return m.enabled, m.err
}

// mockPathResolver implements driven.LogPathResolver.
type mockPathResolver struct {
	dir string
	err error
}

func (m *mockPathResolver) LoggingPath() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.dir, nil
}

// mockHistoryStore implements driven.SyncHistoryStore.
type mockHistoryStore struct {
	saveErr error

	mu   sync.Mutex
	runs []domain.SyncRun
}

func (m *mockHistoryStore) SaveRun(_ context.Context, run domain.SyncRun) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockHistoryStore) GetRun(_ context.Context, runID string) (*domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == runID {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryStore) ListRuns(_ context.Context, orgID string, _ int) ([]domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var runs []domain.SyncRun
	for _, run := range m.runs {
		if run.OrgID == orgID {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (m *mockHistoryStore) Close() error { return nil }
