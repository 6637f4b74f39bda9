// Package migrations holds the Postgres schema as ordered SQL files.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
