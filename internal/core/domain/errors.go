package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedSource indicates a requested source-control provider
	// is outside the supported set.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrCustomBranchesEnabled indicates the organisation has the custom
	// branches feature enabled. Projects in such orgs may legitimately
	// track non-default branches, so automatic synchronisation is unsafe
	// and must not proceed for any target.
	ErrCustomBranchesEnabled = errors.New("custom branches feature is enabled")

	// ErrSourceNotConfigured indicates a source's credentials or
	// environment are missing.
	ErrSourceNotConfigured = errors.New("source not configured")

	// ErrMissingDefaultBranch indicates the provider reported no default
	// branch for a repository.
	ErrMissingDefaultBranch = errors.New("provider reported no default branch")
)
