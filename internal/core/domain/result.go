package domain

// ProjectsMeta holds the per-project outcomes of a sync run.
// Both sequences are ordered by completion, not input order, and are
// concatenated across scopes without deduplication.
type ProjectsMeta struct {
	// Updated lists projects whose branch was changed (or would have
	// been, in dry-run mode).
	Updated []ProjectUpdate

	// Failed lists projects whose update call was rejected.
	Failed []ProjectUpdateFailure
}

// SyncMeta wraps the project outcomes of a sync run.
type SyncMeta struct {
	Projects ProjectsMeta
}

// SyncResult aggregates a batch of target synchronisations.
// A target that failed before its projects could be visited contributes
// to neither ProcessedTargets nor Meta; its failure is reported through
// the failed-sync log only.
type SyncResult struct {
	// ProcessedTargets counts targets that completed without error.
	ProcessedTargets int

	// Meta carries the per-project outcomes.
	Meta SyncMeta
}

// Absorb merges another result into this one by summation and
// concatenation. Order of absorption determines output ordering only,
// never correctness.
func (r *SyncResult) Absorb(other SyncResult) {
	r.ProcessedTargets += other.ProcessedTargets
	r.Meta.Projects.Updated = append(r.Meta.Projects.Updated, other.Meta.Projects.Updated...)
	r.Meta.Projects.Failed = append(r.Meta.Projects.Failed, other.Meta.Projects.Failed...)
}

// OrgSyncResult is the top-level result returned to callers of an
// organisation-wide sync, extending SyncResult with the resolved log
// file locations.
type OrgSyncResult struct {
	SyncResult

	// FileName is the path of the updated-projects log.
	FileName string

	// FailedFileName is the path of the failed-to-update-projects log.
	FailedFileName string
}
