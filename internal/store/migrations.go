package store

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// The directory is embedded at compile time; this cannot fail at
		// runtime with a well-formed build.
		panic(err)
	}
	return sub
}
