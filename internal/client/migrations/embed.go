// Package migrations embeds the local database schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
