package models

import (
	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqliteutil"
	"github.com/gamescout/scout/gamescout"
	"xorm.io/builder"
)

// The catalog cache keeps genres and platforms in the order the
// server listed them.

func SaveGenres(conn *sqlite.Conn, genres []*gamescout.Genre) (retErr error) {
	defer sqliteutil.Save(conn)(&retErr)

	err := ExecRaw(conn, "DELETE FROM genres", nil)
	if err != nil {
		return err
	}

	for i, g := range genres {
		err := Exec(conn, builder.Insert(builder.Eq{
			"id":       g.ID,
			"name":     g.Name,
			"slug":     g.Slug,
			"position": i,
		}).Into("genres"), nil)
		if err != nil {
			return err
		}
	}
	return nil
}

func ListGenres(conn *sqlite.Conn) ([]*gamescout.Genre, error) {
	var genres []*gamescout.Genre
	err := ExecRaw(conn, "SELECT id, name, slug FROM genres ORDER BY position ASC", func(stmt *sqlite.Stmt) error {
		genres = append(genres, &gamescout.Genre{
			ID:   stmt.ColumnInt64(0),
			Name: stmt.ColumnText(1),
			Slug: stmt.ColumnText(2),
		})
		return nil
	})
	return genres, err
}

func SavePlatforms(conn *sqlite.Conn, platforms []*gamescout.Platform) (retErr error) {
	defer sqliteutil.Save(conn)(&retErr)

	err := ExecRaw(conn, "DELETE FROM platforms", nil)
	if err != nil {
		return err
	}

	for i, p := range platforms {
		err := Exec(conn, builder.Insert(builder.Eq{
			"id":       p.ID,
			"name":     p.Name,
			"slug":     p.Slug,
			"position": i,
		}).Into("platforms"), nil)
		if err != nil {
			return err
		}
	}
	return nil
}

func ListPlatforms(conn *sqlite.Conn) ([]*gamescout.Platform, error) {
	var platforms []*gamescout.Platform
	err := ExecRaw(conn, "SELECT id, name, slug FROM platforms ORDER BY position ASC", func(stmt *sqlite.Stmt) error {
		platforms = append(platforms, &gamescout.Platform{
			ID:   stmt.ColumnInt64(0),
			Name: stmt.ColumnText(1),
			Slug: stmt.ColumnText(2),
		})
		return nil
	})
	return platforms, err
}
