package domain

import (
	"fmt"
	"strings"
)

// Source identifies a source-control provider integration.
type Source string

// Supported source-control providers.
const (
	// SourceGitHub is the github.com integration.
	SourceGitHub Source = "github"
)

// SupportedSources returns the providers branch synchronisation is
// implemented for. Targets from any other origin are rejected up front.
func SupportedSources() []Source {
	return []Source{SourceGitHub}
}

// String returns the provider identifier.
func (s Source) String() string {
	return string(s)
}

// Supported reports whether this source is in the supported set.
func (s Source) Supported() bool {
	for _, supported := range SupportedSources() {
		if s == supported {
			return true
		}
	}
	return false
}

// ParseSource converts a raw identifier into a Source.
// Returns ErrUnsupportedSource for identifiers outside the supported set.
func ParseSource(raw string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Supported() {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedSource, raw, SupportedSourceNames())
	}
	return s, nil
}

// FilterSupported keeps only the supported sources from a requested list,
// preserving request order and dropping duplicates.
func FilterSupported(requested []Source) []Source {
	seen := make(map[Source]bool, len(requested))
	filtered := make([]Source, 0, len(requested))
	for _, s := range requested {
		if s.Supported() && !seen[s] {
			seen[s] = true
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// SupportedSourceNames returns the supported providers as a single
// comma-separated string for error messages.
func SupportedSourceNames() string {
	names := make([]string, 0, len(SupportedSources()))
	for _, s := range SupportedSources() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
