package models

import (
	"log"
	"os"
	"time"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqliteutil"
	"github.com/pkg/errors"
	"xorm.io/builder"
)

var logSql = os.Getenv("SCOUT_SQL") == "1"

// ResultFn is called once per returned row.
type ResultFn func(stmt *sqlite.Stmt) error

func Must(err error) {
	if err != nil {
		panic(err)
	}
}

func Exec(conn *sqlite.Conn, b *builder.Builder, resultFn ResultFn) error {
	query, args, err := b.ToSQL()
	if err != nil {
		return errors.WithStack(err)
	}
	return ExecRaw(conn, query, resultFn, args...)
}

func MustExec(conn *sqlite.Conn, b *builder.Builder, resultFn ResultFn) {
	err := Exec(conn, b, resultFn)
	Must(err)
}

func ExecRaw(conn *sqlite.Conn, query string, resultFn ResultFn, args ...interface{}) error {
	if logSql {
		log.Printf("[sql] %s %v", query, args)
	}

	err := sqliteutil.Exec(conn, query, resultFn, args...)
	if err != nil {
		return errors.Wrapf(err, "executing %q", query)
	}
	return nil
}

// Replace writes a row, removing whatever row key previously matched.
func Replace(conn *sqlite.Conn, table string, key builder.Eq, values builder.Eq) (retErr error) {
	defer sqliteutil.Save(conn)(&retErr)

	err := Exec(conn, builder.Delete(key).From(table), nil)
	if err != nil {
		return err
	}

	row := builder.Eq{}
	for k, v := range key {
		row[k] = v
	}
	for k, v := range values {
		row[k] = v
	}
	return Exec(conn, builder.Insert(row).Into(table), nil)
}

func MustReplace(conn *sqlite.Conn, table string, key builder.Eq, values builder.Eq) {
	err := Replace(conn, table, key, values)
	Must(err)
}

func Delete(conn *sqlite.Conn, table string, cond builder.Cond) error {
	return Exec(conn, builder.Delete(cond).From(table), nil)
}

func ColumnTime(col int, stmt *sqlite.Stmt) *time.Time {
	if stmt.ColumnType(col) != sqlite.SQLITE_NULL {
		t, err := time.Parse(time.RFC3339Nano, stmt.ColumnText(col))
		if err == nil {
			return &t
		}
	}
	return nil
}
