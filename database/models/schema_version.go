package models

import (
	"crawshaw.io/sqlite"
	"xorm.io/builder"
)

const SchemaVersionID = "database"

const schemaVersionsTable = "schema_versions"

// EnsureSchemaVersions creates the table migrations are tracked in.
func EnsureSchemaVersions(conn *sqlite.Conn) error {
	return ExecRaw(conn, `CREATE TABLE IF NOT EXISTS schema_versions (
		id TEXT PRIMARY KEY NOT NULL,
		version INTEGER NOT NULL
	)`, nil)
}

func GetSchemaVersion(conn *sqlite.Conn) int64 {
	var version int64
	MustExec(conn, builder.Select("version").From(schemaVersionsTable).Where(builder.Eq{"id": SchemaVersionID}), func(stmt *sqlite.Stmt) error {
		version = stmt.ColumnInt64(0)
		return nil
	})
	return version
}

func SetSchemaVersion(conn *sqlite.Conn, version int64) {
	MustReplace(conn, schemaVersionsTable, builder.Eq{"id": SchemaVersionID}, builder.Eq{"version": version})
}
