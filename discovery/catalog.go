package discovery

import (
	"context"

	"crawshaw.io/sqlite"
	"github.com/gamescout/scout/database"
	"github.com/gamescout/scout/database/models"
	"github.com/gamescout/scout/gamescout"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

// CatalogAPI is the part of the API client the catalog needs.
type CatalogAPI interface {
	ListGenres(ctx context.Context) (*gamescout.ListGenresResponse, error)
	ListPlatforms(ctx context.Context) (*gamescout.ListPlatformsResponse, error)
}

// Catalog serves genres and platforms from the local database, and
// only asks the server once they're stale.
type Catalog struct {
	api      CatalogAPI
	db       *database.DB
	consumer *state.Consumer
}

func NewCatalog(api CatalogAPI, db *database.DB, consumer *state.Consumer) *Catalog {
	return &Catalog{
		api:      api,
		db:       db,
		consumer: consumer,
	}
}

// Genres lists catalog genres. With refresh, the cache is bypassed.
// If the server can't be reached, a stale cache is better than nothing.
func (c *Catalog) Genres(ctx context.Context, refresh bool) ([]*gamescout.Genre, error) {
	var genres []*gamescout.Genre
	err := c.cached(ctx, models.FetchTargetForGenres(), refresh,
		func(conn *sqlite.Conn) (int, error) {
			var err error
			genres, err = models.ListGenres(conn)
			return len(genres), err
		},
		func(conn *sqlite.Conn) error {
			res, err := c.api.ListGenres(ctx)
			if err != nil {
				return err
			}
			genres = res.Results
			return models.SaveGenres(conn, genres)
		},
	)
	return genres, err
}

// Platforms lists catalog platforms, the same way Genres does.
func (c *Catalog) Platforms(ctx context.Context, refresh bool) ([]*gamescout.Platform, error) {
	var platforms []*gamescout.Platform
	err := c.cached(ctx, models.FetchTargetForPlatforms(), refresh,
		func(conn *sqlite.Conn) (int, error) {
			var err error
			platforms, err = models.ListPlatforms(conn)
			return len(platforms), err
		},
		func(conn *sqlite.Conn) error {
			res, err := c.api.ListPlatforms(ctx)
			if err != nil {
				return err
			}
			platforms = res.Results
			return models.SavePlatforms(conn, platforms)
		},
	)
	return platforms, err
}

func (c *Catalog) cached(ctx context.Context, ft models.FetchTarget, refresh bool, load func(conn *sqlite.Conn) (int, error), fetch func(conn *sqlite.Conn) error) error {
	return c.db.WithConn(ctx, func(conn *sqlite.Conn) error {
		stale, err := ft.IsStale(conn)
		if err != nil {
			return err
		}

		if !stale && !refresh {
			c.consumer.Debugf("Using cached %s", ft.Type)
			_, err := load(conn)
			return err
		}

		c.consumer.Debugf("Fetching %s", ft.Type)
		fetchErr := fetch(conn)
		if fetchErr == nil {
			return ft.MarkFresh(conn)
		}

		n, err := load(conn)
		if err != nil {
			return err
		}
		if n == 0 {
			return gamescout.NewFailure(errors.WithMessage(fetchErr, "fetching "+ft.Type), "Failed to load "+ft.Type)
		}
		c.consumer.Warnf("Could not refresh %s, using cached list: %v", ft.Type, fetchErr)
		return nil
	})
}
