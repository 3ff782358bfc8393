package migrations

import (
	"sort"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqliteutil"
	"github.com/gamescout/scout/database/models"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

type Migration func(consumer *state.Consumer, conn *sqlite.Conn) error

var migrations = map[int64]Migration{
	// local storage, fetch freshness, catalog cache
	1704067200: func(consumer *state.Consumer, conn *sqlite.Conn) error {
		return sqliteutil.ExecScript(conn, `
			CREATE TABLE local_storage (
				item TEXT PRIMARY KEY NOT NULL,
				value TEXT NOT NULL
			);
			CREATE TABLE fetch_infos (
				object_type TEXT NOT NULL,
				object_id TEXT NOT NULL,
				fetched_at TEXT,
				PRIMARY KEY (object_type, object_id)
			);
			CREATE TABLE genres (
				id INTEGER PRIMARY KEY NOT NULL,
				name TEXT NOT NULL,
				slug TEXT NOT NULL
			);
			CREATE TABLE platforms (
				id INTEGER PRIMARY KEY NOT NULL,
				name TEXT NOT NULL,
				slug TEXT NOT NULL
			);
		`)
	},
	// keep the catalog in server order
	1709251200: func(consumer *state.Consumer, conn *sqlite.Conn) error {
		err := sqliteutil.ExecScript(conn, `
			ALTER TABLE genres ADD COLUMN position INTEGER NOT NULL DEFAULT 0;
			ALTER TABLE platforms ADD COLUMN position INTEGER NOT NULL DEFAULT 0;
		`)
		if err != nil {
			return err
		}

		// cached rows have no meaningful position, refetch them
		consumer.Infof("Invalidating catalog cache")
		for _, ft := range []models.FetchTarget{models.FetchTargetForGenres(), models.FetchTargetForPlatforms()} {
			err := ft.MarkStale(conn)
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func Do(consumer *state.Consumer, conn *sqlite.Conn) error {
	err := models.EnsureSchemaVersions(conn)
	if err != nil {
		return errors.WithMessage(err, "creating schema versions table")
	}

	currentVersion := models.GetSchemaVersion(conn)
	consumer.Debugf("Current DB version is %d", currentVersion)
	consumer.Debugf("Latest migration is   %d", LatestSchemaVersion())

	todo := getKeysAfter(currentVersion)
	if len(todo) == 0 {
		consumer.Debugf("No migrations to run")
		return nil
	}

	consumer.Debugf("%d migrations to run (%v)", len(todo), todo)
	for _, key := range todo {
		consumer.Debugf("Running migration %d...", key)
		migration := migrations[key]
		err := func() (retErr error) {
			defer recoverInto(&retErr)
			// run migration in a transaction
			defer sqliteutil.Save(conn)(&retErr)
			err := migration(consumer, conn)
			if err != nil {
				return err
			}
			models.SetSchemaVersion(conn, key)
			return nil
		}()
		if err != nil {
			return errors.Wrapf(err, "While running migration %d", key)
		}
	}

	return nil
}

func recoverInto(retErr *error) {
	if r := recover(); r != nil {
		if rErr, ok := r.(error); ok {
			*retErr = rErr
		} else {
			*retErr = errors.Errorf("panic: %v", r)
		}
	}
}

var sortedKeys []int64

func getSortedKeys() []int64 {
	if sortedKeys == nil {
		var keys []int64
		for k := range migrations {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i int, j int) bool {
			return keys[i] < keys[j]
		})
		sortedKeys = keys
	}
	return sortedKeys
}

func getKeysAfter(version int64) []int64 {
	var result []int64
	for _, k := range getSortedKeys() {
		if k > version {
			result = append(result, k)
		}
	}
	return result
}

func LatestSchemaVersion() int64 {
	keys := getSortedKeys()
	if len(keys) == 0 {
		return 0
	}
	return keys[len(keys)-1]
}
