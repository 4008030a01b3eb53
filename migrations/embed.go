// Package migrations embeds the SQL migration files so they ship with the
// binary and can be applied from any working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
