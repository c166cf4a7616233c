// Package migrations embeds the SQL schema migrations for the local
// client database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
