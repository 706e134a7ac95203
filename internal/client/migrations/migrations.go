// Package migrations embeds the client database schema, applied with goose
// at startup.
package migrations

import "embed"

//go:embed sql/*.sql
var Migrations embed.FS
