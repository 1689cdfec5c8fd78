package domain

import "time"

// Project is a single tracked manifest belonging to a target.
// The recorded branch is the only attribute this system ever changes, and
// only via the platform's update call, never locally.
type Project struct {
	// ID is the platform's identifier for the project.
	ID string

	// Name is the project name, typically "owner/name:path/to/manifest".
	Name string

	// Origin is the source-control provider the project was imported from.
	Origin Source

	// Type is the package ecosystem, e.g. "npm" or "maven".
	Type string

	// CreatedAt is when the project was first imported.
	CreatedAt time.Time

	// Branch is the branch the platform currently monitors for this
	// project. Empty when the platform has no branch recorded.
	Branch string
}

// UpdateKind names the project attribute an update touched.
type UpdateKind string

// UpdateKindBranch is the only update kind this system produces.
const UpdateKindBranch UpdateKind = "branch"

// ProjectUpdate records one applied (or, in dry-run mode, simulated)
// branch change. Created once per project that needed a change and never
// mutated afterwards.
type ProjectUpdate struct {
	// ProjectID identifies the updated project.
	ProjectID string

	// From is the branch recorded before the update.
	From string

	// To is the provider's current default branch.
	To string

	// Kind is the attribute that changed. Always UpdateKindBranch.
	Kind UpdateKind

	// DryRun is true when the change was computed but not applied.
	DryRun bool

	// Target is the owning target. Attached at org-sync scope so
	// consumers can attribute outcomes without a second lookup.
	Target *Target
}

// ProjectUpdateFailure records one branch change that the platform's
// update call rejected. Mutually exclusive with ProjectUpdate for a given
// project within a run.
type ProjectUpdateFailure struct {
	// ProjectID identifies the project that failed to update.
	ProjectID string

	// From is the branch recorded before the attempted update.
	From string

	// To is the branch the update attempted to set.
	To string

	// Kind is the attribute the update attempted to change.
	Kind UpdateKind

	// DryRun mirrors the run mode. Always false in practice: dry runs
	// never invoke the update call, so they cannot fail.
	DryRun bool

	// ErrorMessage is the upstream error text, prefixed with the project
	// id and phase.
	ErrorMessage string

	// Target is the owning target, attached at org-sync scope.
	Target *Target
}
