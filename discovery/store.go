package discovery

import (
	"context"

	"crawshaw.io/sqlite"
	"github.com/gamescout/scout/database"
	"github.com/gamescout/scout/database/models"
)

// LoadCriteria returns the criteria saved by SaveCriteria, or the
// defaults if none were.
func LoadCriteria(ctx context.Context, db *database.DB) (Criteria, error) {
	criteria := DefaultCriteria()
	err := db.WithConn(ctx, func(conn *sqlite.Conn) error {
		_, err := models.GetJSONItem(conn, models.StorageKeyCriteria, &criteria)
		return err
	})
	return criteria, err
}

func SaveCriteria(ctx context.Context, db *database.DB, criteria Criteria) error {
	return db.WithConn(ctx, func(conn *sqlite.Conn) error {
		return models.SetJSONItem(conn, models.StorageKeyCriteria, criteria)
	})
}

// Partial returns the change that turns any criteria into c.
func (c Criteria) Partial() Partial {
	return Partial{
		Search:        &c.Search,
		Genres:        &c.Genres,
		Platforms:     &c.Platforms,
		ReleaseFilter: &c.ReleaseFilter,
	}
}
