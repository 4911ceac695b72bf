// Package migrations embeds the schema migration files so the server and
// the repo integration tests can run goose programmatically, without a
// migrations directory on disk at runtime.
package migrations

import "embed"

// FS contains every *.sql migration, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
