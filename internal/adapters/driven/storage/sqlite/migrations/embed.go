// Package migrations embeds SQL migration files for the SQLite store.
package migrations

import "embed"

// FS contains the schema migration files embedded at compile time,
// applied in version order on store open.
//
//go:embed *.sql
var FS embed.FS
