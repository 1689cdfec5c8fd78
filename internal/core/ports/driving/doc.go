// Package driving defines the inbound ports of the sync engine: the
// interfaces the CLI calls into.
package driving
