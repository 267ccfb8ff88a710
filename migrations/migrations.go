// Package migrations embeds the SQL schema migration files.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
