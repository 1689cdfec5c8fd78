// Package services implements the branch synchronisation engine: the
// per-project branch decision, the per-target synchroniser, the bounded
// fan-out over targets and the organisation-wide orchestrator.
package services
