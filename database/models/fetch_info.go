package models

import (
	"strconv"
	"time"

	"crawshaw.io/sqlite"
	"github.com/pkg/errors"
	"xorm.io/builder"
)

const fetchInfosTable = "fetch_infos"

type FetchInfo struct {
	// Something like "genres", "platforms", etc.
	ObjectType string
	ObjectID   string

	FetchedAt *time.Time
}

func GetFetchInfoString(conn *sqlite.Conn, objectType string, objectID string) (*FetchInfo, error) {
	var fi *FetchInfo
	q := builder.Select("fetched_at").From(fetchInfosTable).Where(builder.Eq{
		"object_type": objectType,
		"object_id":   objectID,
	})
	err := Exec(conn, q, func(stmt *sqlite.Stmt) error {
		fi = &FetchInfo{
			ObjectType: objectType,
			ObjectID:   objectID,
			FetchedAt:  ColumnTime(0, stmt),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fi, nil
}

type FetchTarget struct {
	// snake_case, like "genres" or "platforms"
	Type string

	// if non-empty, will be used
	StringID string

	// if StringID is empty, this is used
	ID int64

	// age after which a resource is considered stale
	TTL time.Duration
}

func (ft FetchTarget) Validate() error {
	if ft.Type == "" {
		return errors.Errorf("FetchTarget.Type must be non-empty")
	}
	if ft.StringID == "" && ft.ID == 0 {
		return errors.Errorf("FetchTarget.StringID or FetchTarget.ID must be set")
	}
	if ft.TTL == 0 {
		return errors.Errorf("FetchTarget.TTL must be non-zero")
	}
	return nil
}

func (ft FetchTarget) objectID() string {
	if ft.StringID != "" {
		return ft.StringID
	}
	return strconv.FormatInt(ft.ID, 10)
}

func (ft FetchTarget) GetInfo(conn *sqlite.Conn) (*FetchInfo, error) {
	return GetFetchInfoString(conn, ft.Type, ft.objectID())
}

func (ft FetchTarget) IsStale(conn *sqlite.Conn) (bool, error) {
	err := ft.Validate()
	if err != nil {
		return false, err
	}

	fi, err := ft.GetInfo(conn)
	if err != nil {
		return false, err
	}

	if fi == nil || fi.FetchedAt == nil {
		return true, nil
	}

	if time.Since(*fi.FetchedAt) > ft.TTL {
		return true, nil
	}
	return false, nil
}

func (ft FetchTarget) MarkFresh(conn *sqlite.Conn) error {
	return ft.markFetchedAt(conn, time.Now().UTC())
}

// MarkStale forgets when the target was fetched, so the next
// IsStale returns true.
func (ft FetchTarget) MarkStale(conn *sqlite.Conn) error {
	err := ft.Validate()
	if err != nil {
		return err
	}
	return Delete(conn, fetchInfosTable, builder.Eq{
		"object_type": ft.Type,
		"object_id":   ft.objectID(),
	})
}

func (ft FetchTarget) markFetchedAt(conn *sqlite.Conn, fetchedAt time.Time) error {
	err := ft.Validate()
	if err != nil {
		return err
	}

	return Replace(conn, fetchInfosTable, builder.Eq{
		"object_type": ft.Type,
		"object_id":   ft.objectID(),
	}, builder.Eq{
		"fetched_at": fetchedAt.Format(time.RFC3339Nano),
	})
}
