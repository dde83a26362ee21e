// Package migrations embeds the goose migrations for the local store.
// The same SQL runs on SQLite and PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
