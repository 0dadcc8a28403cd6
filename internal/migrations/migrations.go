// Package migrations embeds the goose SQL migrations of the SQLite substrate.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
