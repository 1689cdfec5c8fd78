// Package migrations embeds the SQL migration files for the sync
// history store.
package migrations

import "embed"

// FS holds every migration file, embedded at compile time so the
// binary needs no external schema assets.
//
//go:embed *.sql
var FS embed.FS
