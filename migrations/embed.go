// Package migrations embeds the SQL migration files for the livestock schema
// so they can be applied through the goose programmatic API in tests and
// server bootstrap.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to a goose.Provider instead of relying on a filesystem
// path at runtime.
//
//go:embed *.sql
var FS embed.FS
