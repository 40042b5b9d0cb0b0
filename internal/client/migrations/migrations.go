// Package migrations embeds the goose migrations for the CLI's local SQLite
// database, which keeps the signed-in session between runs.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
