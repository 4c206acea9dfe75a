// Package db ships the goose migrations inside the binary.
package db

import "embed"

const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
