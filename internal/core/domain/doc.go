// Package domain contains the core business types for branch
// synchronisation: targets, projects, update outcomes and aggregated
// sync results. It has no dependencies on adapters or transport.
package domain
