// Package migrations holds the Go migrations for the session store. The scs
// stores expect a different column layout per database, so the DDL is chosen
// at run time from the dialect.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// Dialect returns the dialect set by SetDialect ("" means sqlite3).
func Dialect() string {
	return dialect
}
