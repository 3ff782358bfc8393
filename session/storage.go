package session

import (
	"context"

	"crawshaw.io/sqlite"
	"github.com/gamescout/scout/database"
	"github.com/gamescout/scout/database/models"
	"github.com/gamescout/scout/gamescout"
)

// Storage persists the access token and the identity under
// the fixed keys `token` and `user`.
type Storage interface {
	Load(ctx context.Context) (string, *gamescout.User, error)
	Save(ctx context.Context, token string, user *gamescout.User) error
	SaveUser(ctx context.Context, user *gamescout.User) error
	Clear(ctx context.Context) error
}

type dbStorage struct {
	db *database.DB
}

var _ Storage = (*dbStorage)(nil)

// NewDBStorage keeps the session in scout's local database.
func NewDBStorage(db *database.DB) Storage {
	return &dbStorage{db: db}
}

func (ds *dbStorage) Load(ctx context.Context) (token string, user *gamescout.User, err error) {
	err = ds.db.WithConn(ctx, func(conn *sqlite.Conn) error {
		var loadErr error
		token, user, loadErr = models.LoadCredentials(conn)
		return loadErr
	})
	return
}

func (ds *dbStorage) Save(ctx context.Context, token string, user *gamescout.User) error {
	return ds.db.WithConn(ctx, func(conn *sqlite.Conn) error {
		return models.SaveCredentials(conn, token, user)
	})
}

func (ds *dbStorage) SaveUser(ctx context.Context, user *gamescout.User) error {
	return ds.db.WithConn(ctx, func(conn *sqlite.Conn) error {
		return models.SaveUser(conn, user)
	})
}

func (ds *dbStorage) Clear(ctx context.Context) error {
	return ds.db.WithConn(ctx, func(conn *sqlite.Conn) error {
		return models.ClearCredentials(conn)
	})
}
