package domain

// Target is a tracked repository under an organisation.
// Targets are immutable for the duration of a sync run; they are supplied
// by the platform's target listing and never written back.
type Target struct {
	// ID is the platform's identifier for the target.
	ID string

	// DisplayName is the human-readable repository name,
	// typically "owner/name".
	DisplayName string

	// Private reports the repository's visibility on the provider.
	Private bool

	// Origin is the source-control provider the target was imported from.
	Origin Source

	// RemoteURL is the repository's clone/browse URL. May be empty for
	// targets imported before the platform recorded it.
	RemoteURL string

	// OrgID is the owning organisation.
	OrgID string
}
