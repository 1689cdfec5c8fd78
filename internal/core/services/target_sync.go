package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/branchsync-cli/internal/logger"
)

// TargetConcurrency is the number of targets synchronised at once within
// a source. The shared request layer absorbs this comfortably; raising
// it mostly trades provider rate limit budget for wall-clock time.
const TargetConcurrency = 20

// TargetSynchronizer aligns the projects of individual targets with the
// provider's default branch, and fans that work out over batches of
// targets with per-target failure isolation.
type TargetSynchronizer struct {
	projects driven.ProjectLister
	updater  driven.ProjectUpdater
	handlers driven.SourceHandlerRegistry
	syncLog  driven.SyncLogWriter

	targetConcurrency int
}

// NewTargetSynchronizer creates a target synchroniser.
func NewTargetSynchronizer(
	projects driven.ProjectLister,
	updater driven.ProjectUpdater,
	handlers driven.SourceHandlerRegistry,
	syncLog driven.SyncLogWriter,
) *TargetSynchronizer {
	return &TargetSynchronizer{
		projects:          projects,
		updater:           updater,
		handlers:          handlers,
		syncLog:           syncLog,
		targetConcurrency: TargetConcurrency,
	}
}

// SyncTarget synchronises every project under one target.
//
// The project listing and the default-branch lookup are target-level
// operations: if either fails the error propagates and the target cannot
// be synchronised at all. Individual projects are then processed
// sequentially, so the relative order of updates mirrors listing order;
// per-project update failures are captured as data, never returned as
// errors. An empty target yields two empty sequences, not an error.
func (s *TargetSynchronizer) SyncTarget(
	ctx context.Context,
	orgID string,
	target domain.Target,
	dryRun bool,
) (domain.ProjectsMeta, error) {
	var meta domain.ProjectsMeta

	projects, err := s.projects.ListProjects(ctx, orgID, target.ID)
	if err != nil {
		return meta, fmt.Errorf("list projects for target %s: %w", target.DisplayName, err)
	}

	handler, err := s.handlers.Handler(target.Origin)
	if err != nil {
		return meta, fmt.Errorf("resolve source handler for target %s: %w", target.DisplayName, err)
	}

	// One provider call per target, regardless of project count.
	defaultBranch, err := handler.DefaultBranch(ctx, target)
	if err != nil {
		return meta, fmt.Errorf("fetch default branch for target %s: %w", target.DisplayName, err)
	}

	for _, project := range projects {
		update, failure := syncProjectBranch(ctx, s.updater, orgID, project, defaultBranch, dryRun)
		if update != nil {
			meta.Updated = append(meta.Updated, *update)
		}
		if failure != nil {
			meta.Failed = append(meta.Failed, *failure)
		}
	}

	return meta, nil
}

// SyncTargets fans SyncTarget out over a batch of targets with bounded
// concurrency and accumulates the outcomes.
//
// Each target runs inside a failure boundary: a target that errors is
// warned about, appended to the failed-sync log, and otherwise skipped —
// it does not count as processed and contributes no project outcomes.
// Successful targets have their outcomes logged as they complete, then
// accumulated in completion order.
func (s *TargetSynchronizer) SyncTargets(
	ctx context.Context,
	orgID string,
	targets []domain.Target,
	dryRun bool,
) domain.SyncResult {
	outcomes := forEachLimit(ctx, targets, s.targetConcurrency,
		func(ctx context.Context, target domain.Target) (meta domain.ProjectsMeta, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("sync target %s: panic: %v", target.DisplayName, r)
				}
			}()

			meta, err = s.SyncTarget(ctx, orgID, target, dryRun)
			if err != nil {
				logger.Warn("Skipping target %s: %v", target.DisplayName, err)
				if logErr := s.syncLog.LogFailedSync(ctx, orgID, target, err.Error()); logErr != nil {
					logger.Warn("Failed to log sync failure for target %s: %v", target.DisplayName, logErr)
				}
				return meta, err
			}

			// The owning target is attached here, at aggregation scope,
			// so downstream consumers need no second lookup.
			for i := range meta.Updated {
				meta.Updated[i].Target = &target
			}
			for i := range meta.Failed {
				meta.Failed[i].Target = &target
			}

			// Durable logging happens incrementally, per target.
			if len(meta.Updated) > 0 {
				if logErr := s.syncLog.LogUpdatedProjects(ctx, orgID, meta.Updated); logErr != nil {
					logger.Warn("Failed to log updated projects for target %s: %v", target.DisplayName, logErr)
				}
			}
			if len(meta.Failed) > 0 {
				if logErr := s.syncLog.LogFailedUpdates(ctx, orgID, meta.Failed); logErr != nil {
					logger.Warn("Failed to log update failures for target %s: %v", target.DisplayName, logErr)
				}
			}

			return meta, nil
		})

	var result domain.SyncResult
	for _, outcome := range outcomes {
		if outcome.err != nil {
			continue
		}
		result.ProcessedTargets++
		result.Meta.Projects.Updated = append(result.Meta.Projects.Updated, outcome.value.Updated...)
		result.Meta.Projects.Failed = append(result.Meta.Projects.Failed, outcome.value.Failed...)
	}

	return result
}
