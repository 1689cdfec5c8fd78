// Package github is the GitHub source handler: it answers "what is the
// provider's current default branch for this repository" and verifies
// the integration is configured. It never mutates anything on GitHub.
package github
