// Package migrations contiene el esquema SQL versionado (goose).
package migrations

import "embed"

// FS migraciones embebidas en el binario.
//
//go:embed *.sql
var FS embed.FS
