// Package migrations SQL-миграции реестра чатов бота.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
