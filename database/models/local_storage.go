package models

import (
	"encoding/json"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqliteutil"
	"github.com/pkg/errors"
	"xorm.io/builder"
)

const localStorageTable = "local_storage"

// Keys under which the session is persisted.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"

	// last search criteria, so `scout search` picks up where it left off
	StorageKeyCriteria = "search_criteria"
)

// GetItem returns the value stored under key, and whether it exists.
func GetItem(conn *sqlite.Conn, key string) (string, bool, error) {
	var value string
	found := false
	q := builder.Select("value").From(localStorageTable).Where(builder.Eq{"item": key})
	err := Exec(conn, q, func(stmt *sqlite.Stmt) error {
		value = stmt.ColumnText(0)
		found = true
		return nil
	})
	return value, found, err
}

func SetItem(conn *sqlite.Conn, key string, value string) error {
	return Replace(conn, localStorageTable, builder.Eq{"item": key}, builder.Eq{"value": value})
}

// SetItems stores all items or none of them.
func SetItems(conn *sqlite.Conn, items map[string]string) (retErr error) {
	defer sqliteutil.Save(conn)(&retErr)

	for key, value := range items {
		err := SetItem(conn, key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

func RemoveItems(conn *sqlite.Conn, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	values := make([]interface{}, len(keys))
	for i, key := range keys {
		values[i] = key
	}
	return Delete(conn, localStorageTable, builder.In("item", values...))
}

// GetJSONItem decodes the value stored under key into out. It returns
// false, leaving out untouched, if there is none.
func GetJSONItem(conn *sqlite.Conn, key string, out interface{}) (bool, error) {
	value, found, err := GetItem(conn, key)
	if err != nil || !found {
		return false, err
	}

	err = UnmarshalJSONAllowEmpty(value, out, key)
	if err != nil {
		return false, err
	}
	return true, nil
}

func SetJSONItem(conn *sqlite.Conn, key string, value interface{}) error {
	contents, err := json.Marshal(value)
	if err != nil {
		return errors.WithStack(err)
	}
	return SetItem(conn, key, string(contents))
}
