// Package migrations embeds the goose migrations for every supported dialect.
// Each dialect lives in a directory named after dbx.Dialect.Name.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql mysql/*.sql
var Migrations embed.FS
