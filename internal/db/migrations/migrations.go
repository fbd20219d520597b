// Package migrations embeds the goose SQL files that create the service schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
