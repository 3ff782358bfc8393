package database

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"crawshaw.io/sqlite"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/database/models/migrations"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

var debugSql = os.Getenv("SCOUT_SQL") == "1"

// ErrDatabaseBusy is returned when no connection frees up in time.
var ErrDatabaseBusy = errors.New("database is busy")

const defaultPoolSize = 4

// DB is scout's local sqlite database: stored credentials,
// fetch freshness and the catalog cache.
type DB struct {
	pool   *sqlite.Pool
	logger *slog.Logger
}

// Open returns a pool of connections to scout's sqlite database,
// creating and migrating it if needed.
func Open(consumer *state.Consumer, dbPath string) (*DB, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), 0755)
	if err != nil {
		return nil, errors.Wrap(err, "creating db directory")
	}

	justCreated := false
	if _, statErr := os.Stat(dbPath); statErr != nil {
		consumer.Debugf("Creating new DB at %s", dbPath)
		justCreated = true
	}

	pool, err := sqlite.Open(dbPath, 0, defaultPoolSize)
	if err != nil {
		return nil, errors.Wrap(err, "opening SQLite database")
	}

	level := slog.LevelInfo
	if debugSql {
		level = slog.LevelDebug
	}

	db := &DB{
		pool:   pool,
		logger: slog.New(comm.NewSlogHandler(level)).With("component", "database"),
	}

	err = db.WithConn(context.Background(), func(conn *sqlite.Conn) error {
		return Prepare(consumer, conn, justCreated)
	})
	if err != nil {
		pool.Close()
		return nil, errors.WithMessage(err, "preparing DB")
	}

	return db, nil
}

// Prepare runs pending migrations.
func Prepare(consumer *state.Consumer, conn *sqlite.Conn, justCreated bool) error {
	if justCreated {
		consumer.Debugf("Fresh DB, running all migrations")
	}
	return migrations.Do(consumer, conn)
}

// GetConn takes a connection from the pool, waiting at most 3 seconds.
// It must be returned with PutConn.
func (db *DB) GetConn(ctx context.Context) (*sqlite.Conn, error) {
	getCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	conn := db.pool.Get(getCtx.Done())
	if conn == nil {
		return nil, errors.WithStack(ErrDatabaseBusy)
	}
	conn.SetInterrupt(ctx.Done())
	return conn, nil
}

func (db *DB) PutConn(conn *sqlite.Conn) {
	conn.SetInterrupt(nil)
	db.pool.Put(conn)
}

// WithConn runs f with a pooled connection. Panics raised by the
// Must* helpers of the models package are returned as errors.
func (db *DB) WithConn(ctx context.Context, f func(conn *sqlite.Conn) error) (retErr error) {
	conn, err := db.GetConn(ctx)
	if err != nil {
		return err
	}
	defer db.PutConn(conn)
	defer recoverInto(&retErr)

	start := time.Now()
	err = f(conn)
	db.logger.Debug("storage transaction", "duration", time.Since(start).String(), "ok", err == nil)
	return err
}

func (db *DB) Close() error {
	return db.pool.Close()
}

func recoverInto(retErr *error) {
	if r := recover(); r != nil {
		if rErr, ok := r.(error); ok {
			*retErr = errors.WithStack(rErr)
		} else {
			*retErr = errors.Errorf("panic: %v", r)
		}
	}
}
