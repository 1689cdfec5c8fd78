// Package sqlite provides the SQLite-backed sync history store.
// Completed runs and their per-project outcomes are kept for audit;
// recording is best-effort and never affects a run's result.
package sqlite
