package overlay_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gamescout/scout/collection"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/overlay"
	"github.com/gamescout/scout/scouttest"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	detailsRoute = "/api/games/:id"
	checkRoute   = "/api/wishlist/check/:rawg_id"
)

type fixture struct {
	server     *scouttest.Server
	collection *collection.Collection
	overlay    *overlay.Overlay
	closed     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", nil, nil)
	client := s.Client(s.Token("alice"))

	f := &fixture{
		server:     s,
		collection: collection.New(client, &state.Consumer{}),
	}
	f.overlay = overlay.New(client, f.collection, &state.Consumer{}, func() {
		f.closed++
	})
	return f
}

func Test_Open(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	game := scouttest.DefaultCatalog()[2]

	assert.EqualValues(overlay.StatusUnknown, f.overlay.Status())
	require.NoError(t, f.overlay.Open(context.Background(), game))

	assert.Equal(game, f.overlay.Game())
	details := f.overlay.Details()
	require.NotNil(t, details)
	assert.EqualValues("The Witcher 3: Wild Hunt", details.Name)
	assert.EqualValues("Example Studio", details.Developers[0].Name)
	assert.Len(f.overlay.Screenshots(), 3)
	assert.EqualValues(overlay.StatusNone, f.overlay.Status())

	f.server.Collect("alice", game, gamescout.StatusPlayed)
	require.NoError(t, f.overlay.Open(context.Background(), game))
	assert.EqualValues(overlay.StatusPlayed, f.overlay.Status())
	assert.False(f.overlay.CanSet(gamescout.StatusPlayed))
	assert.True(f.overlay.CanSet(gamescout.StatusWishlist))
}

func Test_OpenUnofferedStatus(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	game := scouttest.DefaultCatalog()[1]

	f.server.Collect("alice", game, gamescout.Status("interested"))
	require.NoError(t, f.overlay.Open(context.Background(), game))
	assert.EqualValues(overlay.StatusUnknown, f.overlay.Status())
	assert.NotNil(f.overlay.Details())
	assert.True(f.overlay.CanSet(gamescout.StatusWishlist))
	assert.True(f.overlay.CanSet(gamescout.StatusPlayed))
}

func Test_OpenNothing(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	err := f.overlay.Open(context.Background(), nil)
	assert.True(errors.Is(err, overlay.ErrNoGame))
	assert.Nil(f.overlay.Game())
	assert.Empty(f.server.Requests())
}

func Test_OpenByID(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.overlay.Open(ctx, &gamescout.Game{ID: 1001}))
	assert.EqualValues("Celeste", f.overlay.Game().Name)

	_, err := f.overlay.SetStatus(ctx, gamescout.StatusWishlist)
	require.NoError(t, err)
	saved := f.server.Collection("alice")
	require.Len(t, saved, 1)
	assert.EqualValues("Celeste", saved[0].Title)
	assert.EqualValues([]string{"Platformer", "Indie"}, saved[0].Genres)
}

func Test_OpenDetailsDontWaitForCheck(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	game := scouttest.DefaultCatalog()[0]
	f.server.Collect("alice", game, gamescout.StatusWishlist)

	hold := f.server.HoldNext(http.MethodGet, checkRoute)
	defer hold.Release()

	done := make(chan error, 1)
	go func() {
		done <- f.overlay.Open(context.Background(), game)
	}()

	<-hold.Arrived()
	assert.Eventually(func() bool {
		return f.overlay.Details() != nil
	}, 5*time.Second, 5*time.Millisecond)
	assert.EqualValues(overlay.StatusUnknown, f.overlay.Status())

	hold.Release()
	require.NoError(t, <-done)
	assert.EqualValues(overlay.StatusWishlist, f.overlay.Status())
}

func Test_OpenCheckDoesntWaitForDetails(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	game := scouttest.DefaultCatalog()[0]
	f.server.Collect("alice", game, gamescout.StatusPlayed)

	hold := f.server.HoldNext(http.MethodGet, detailsRoute)
	defer hold.Release()

	done := make(chan error, 1)
	go func() {
		done <- f.overlay.Open(context.Background(), game)
	}()

	<-hold.Arrived()
	assert.Eventually(func() bool {
		return f.overlay.Status() == overlay.StatusPlayed
	}, 5*time.Second, 5*time.Millisecond)
	assert.Nil(f.overlay.Details())

	hold.Release()
	require.NoError(t, <-done)
	assert.NotNil(f.overlay.Details())
}

func Test_OpenFailures(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	ctx := context.Background()
	game := scouttest.DefaultCatalog()[0]

	f.server.FailOnce(http.MethodGet, checkRoute, http.StatusInternalServerError, "")
	require.NoError(t, f.overlay.Open(ctx, game))
	assert.EqualValues(overlay.StatusUnknown, f.overlay.Status())
	assert.NotNil(f.overlay.Details())

	f.server.FailOnce(http.MethodGet, detailsRoute, http.StatusInternalServerError, "")
	err := f.overlay.Open(ctx, game)
	assert.EqualValues(overlay.LoadFailed, err.Error())
	assert.Nil(f.overlay.Details())
	assert.EqualValues(overlay.StatusNone, f.overlay.Status())

	missing := scouttest.NewGame(99, "Nowhere", 4.0, "Action")
	err = f.overlay.Open(ctx, missing)
	assert.EqualValues("Game not found", err.Error())
}

func Test_SetStatus(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	ctx := context.Background()
	game := scouttest.DefaultCatalog()[5]

	_, err := f.overlay.SetStatus(ctx, gamescout.StatusWishlist)
	assert.EqualValues(overlay.ErrNotOpen, errors.Cause(err))

	require.NoError(t, f.overlay.Open(ctx, game))

	msg, err := f.overlay.SetStatus(ctx, gamescout.StatusWishlist)
	require.NoError(t, err)
	assert.EqualValues("Status updated to wishlist!", msg)
	assert.EqualValues(overlay.StatusWishlist, f.overlay.Status())
	assert.EqualValues(msg, f.overlay.Message())
	require.Len(t, f.collection.Games(), 1)

	_, err = f.overlay.SetStatus(ctx, gamescout.StatusWishlist)
	assert.EqualValues(overlay.ErrAlreadyInStatus, errors.Cause(err))
	assert.EqualValues(1, f.server.CountRequests(http.MethodPost, "/api/wishlist"))

	f.server.FailOnce(http.MethodPost, "/api/wishlist", http.StatusInternalServerError, "")
	_, err = f.overlay.SetStatus(ctx, gamescout.StatusPlayed)
	assert.EqualValues(overlay.UpdateFailed, err.Error())
	assert.EqualValues(overlay.UpdateFailed, f.overlay.Message())
	assert.EqualValues(overlay.StatusWishlist, f.overlay.Status())

	msg, err = f.overlay.SetStatus(ctx, gamescout.StatusPlayed)
	require.NoError(t, err)
	assert.EqualValues("Status updated to played!", msg)
	assert.EqualValues(overlay.StatusPlayed, f.overlay.Status())
	assert.Len(f.server.Collection("alice"), 1)
	assert.EqualValues(gamescout.StatusPlayed, f.collection.Games()[0].Status)

	_, err = f.overlay.SetStatus(ctx, gamescout.Status("interested"))
	assert.EqualValues(collection.ErrInvalidStatus, errors.Cause(err))
}

func Test_Close(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	f.overlay.Close()
	assert.EqualValues(0, f.closed)

	require.NoError(t, f.overlay.Open(context.Background(), scouttest.DefaultCatalog()[0]))
	f.overlay.Close()
	assert.EqualValues(1, f.closed)
	assert.Nil(f.overlay.Game())
	assert.Nil(f.overlay.Details())
	assert.EqualValues(overlay.StatusUnknown, f.overlay.Status())
}
