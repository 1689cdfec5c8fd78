// Package driven defines the outbound ports of the sync engine: the
// platform API, the source-control providers, the sync log writers and
// the run history store. Adapters implement these interfaces; the core
// services depend only on them.
package driven
