// Package migrations embeds the SQL migration files so a standalone binary
// can create its own schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
