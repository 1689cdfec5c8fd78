package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/branchsync-cli/internal/logger"
)

// SourceConcurrency is the number of sources synchronised at once.
const SourceConcurrency = 3

// TargetPageSize is the page size used when listing an organisation's
// targets from the platform.
const TargetPageSize = 100

// Ensure OrgSyncOrchestrator implements the interface.
var _ driving.OrgSyncer = (*OrgSyncOrchestrator)(nil)

// OrgSyncOrchestrator is the top-level entry point for an
// organisation-wide branch sync: it validates the requested sources,
// enforces the custom-branches eligibility gate, lists targets per
// source and delegates each source's batch to the target synchroniser.
type OrgSyncOrchestrator struct {
	targets  driven.TargetLister
	flags    driven.FeatureFlagReader
	handlers driven.SourceHandlerRegistry
	syncer   *TargetSynchronizer
	paths    driven.LogPathResolver

	// history is optional; a nil store disables run auditing.
	history driven.SyncHistoryStore
}

// NewOrgSyncOrchestrator creates an orchestrator. The history store may
// be nil, in which case runs are not recorded.
func NewOrgSyncOrchestrator(
	targets driven.TargetLister,
	flags driven.FeatureFlagReader,
	handlers driven.SourceHandlerRegistry,
	syncer *TargetSynchronizer,
	paths driven.LogPathResolver,
	history driven.SyncHistoryStore,
) *OrgSyncOrchestrator {
	return &OrgSyncOrchestrator{
		targets:  targets,
		flags:    flags,
		handlers: handlers,
		syncer:   syncer,
		paths:    paths,
		history:  history,
	}
}

// UpdateOrgTargets synchronises every project in the organisation with
// its provider's current default branch.
//
// Fatal errors (no supported source requested, feature-flag lookup
// failure, custom branches enabled, source misconfiguration) are
// returned as errors. Target- and project-level failures never abort the
// run; they surface only through the returned failed list and the sync
// log files.
func (o *OrgSyncOrchestrator) UpdateOrgTargets(
	ctx context.Context,
	req driving.OrgSyncRequest,
) (*domain.OrgSyncResult, error) {
	startedAt := time.Now()

	sources := domain.FilterSupported(req.Sources)
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no requested source is supported (supported: %s)",
			domain.ErrUnsupportedSource, domain.SupportedSourceNames())
	}

	// Eligibility gate: both a flag lookup failure and an enabled flag
	// stop the run before any target work is dispatched.
	enabled, err := o.flags.FeatureFlagEnabled(ctx, domain.FeatureFlagCustomBranches, req.OrgID)
	if err != nil {
		return nil, fmt.Errorf("check custom branches feature for org %s: %w", req.OrgID, err)
	}
	if enabled {
		return nil, fmt.Errorf("%w for org %s: projects have no single default branch to synchronise",
			domain.ErrCustomBranchesEnabled, req.OrgID)
	}

	logger.Info("Starting branch sync for org %s (sources: %d, dry run: %t)",
		req.OrgID, len(sources), req.DryRun)

	outcomes := forEachLimit(ctx, sources, SourceConcurrency,
		func(ctx context.Context, source domain.Source) (domain.SyncResult, error) {
			return o.syncSource(ctx, req.OrgID, source, req.DryRun)
		})

	result := &domain.OrgSyncResult{}
	for _, outcome := range outcomes {
		if outcome.err != nil {
			// Source-level failures are fatal for the run; the remaining
			// sources still ran to completion before this returns.
			return nil, fmt.Errorf("sync source %s: %w", outcome.item, outcome.err)
		}
		result.Absorb(outcome.value)
	}

	result.FileName, result.FailedFileName = o.resolveLogPaths()

	o.recordRun(ctx, req, sources, result, startedAt)

	logger.Info("Branch sync complete for org %s: %d targets processed, %d updated, %d failed",
		req.OrgID, result.ProcessedTargets,
		len(result.Meta.Projects.Updated), len(result.Meta.Projects.Failed))

	return result, nil
}

// syncSource runs one source's branch of the fan-out: configured check,
// target listing, then the bounded per-target batch.
func (o *OrgSyncOrchestrator) syncSource(
	ctx context.Context,
	orgID string,
	source domain.Source,
	dryRun bool,
) (domain.SyncResult, error) {
	var result domain.SyncResult

	handler, err := o.handlers.Handler(source)
	if err != nil {
		return result, err
	}
	if err := handler.Configured(); err != nil {
		return result, err
	}

	targets, err := o.targets.ListTargets(ctx, orgID, driven.TargetListOptions{
		Limit:        TargetPageSize,
		Origin:       source,
		ExcludeEmpty: true,
	})
	if err != nil {
		return result, fmt.Errorf("list targets: %w", err)
	}

	logger.Info("Syncing %d %s targets for org %s", len(targets), source, orgID)

	return o.syncer.SyncTargets(ctx, orgID, targets, dryRun), nil
}

// resolveLogPaths joins the configured logging directory with the fixed
// log file names. Resolution failure falls back to the bare names; it
// never aborts the run.
func (o *OrgSyncOrchestrator) resolveLogPaths() (fileName, failedFileName string) {
	dir, err := o.paths.LoggingPath()
	if err != nil {
		logger.Warn("Failed to resolve logging path, reporting bare file names: %v", err)
		return driven.UpdatedProjectsLogName, driven.FailedUpdatesLogName
	}
	return filepath.Join(dir, driven.UpdatedProjectsLogName), filepath.Join(dir, driven.FailedUpdatesLogName)
}

// recordRun persists the run to the history store, best effort.
func (o *OrgSyncOrchestrator) recordRun(
	ctx context.Context,
	req driving.OrgSyncRequest,
	sources []domain.Source,
	result *domain.OrgSyncResult,
	startedAt time.Time,
) {
	if o.history == nil {
		return
	}

	run := domain.SyncRun{
		ID:               uuid.NewString(),
		OrgID:            req.OrgID,
		Sources:          sources,
		DryRun:           req.DryRun,
		ProcessedTargets: result.ProcessedTargets,
		StartedAt:        startedAt,
		FinishedAt:       time.Now(),
		Projects:         result.Meta.Projects,
	}

	if err := o.history.SaveRun(ctx, run); err != nil {
		logger.Warn("Failed to record sync run for org %s: %v", req.OrgID, err)
	}
}
