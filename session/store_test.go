package session_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gamescout/scout/database"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/scouttest"
	"github.com/gamescout/scout/session"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server  *scouttest.Server
	storage session.Storage
	store   *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := scouttest.NewServer(t)
	server.AddUser("alice", "alice@example.com", "hunter22", []string{"rpg", "indie"}, []string{"PC"})

	db, err := database.Open(&state.Consumer{}, filepath.Join(t.TempDir(), "scout.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	storage := session.NewDBStorage(db)
	return &fixture{
		server:  server,
		storage: storage,
		store:   session.NewStore(server.Client(""), storage, &state.Consumer{}),
	}
}

func (f *fixture) reopen() *session.Store {
	return session.NewStore(f.server.Client(""), f.storage, &state.Consumer{})
}

func Test_SignupValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Signup(ctx, session.SignupForm{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "abc12",
		ConfirmPassword: "abc12",
	})
	assert.True(t, session.IsValidationError(err))
	assert.EqualValues(t, "Password must be at least 6 characters", err.Error())

	_, err = f.store.Signup(ctx, session.SignupForm{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdeg",
	})
	assert.True(t, session.IsValidationError(err))
	assert.EqualValues(t, "Passwords do not match", err.Error())

	// mismatch wins over length
	_, err = f.store.Signup(ctx, session.SignupForm{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "abc",
		ConfirmPassword: "abd",
	})
	assert.EqualValues(t, "Passwords do not match", err.Error())

	_, err = f.store.Signup(ctx, session.SignupForm{
		Email:           "bob@example.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
	})
	assert.EqualValues(t, "Username is required", err.Error())

	_, err = f.store.Signup(ctx, session.SignupForm{
		Username:        "bob",
		Email:           "not-an-email",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
	})
	assert.EqualValues(t, "Email address is invalid", err.Error())

	assert.EqualValues(t, 0, f.server.CountRequests(http.MethodPost, "/api/auth/signup"))
	assert.False(t, f.store.LoggedIn())
}

func Test_Signup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.store.Signup(ctx, session.SignupForm{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
		FavoriteGenres:  []string{"action", "rpg", "indie"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, "bob", user.Username)
	assert.EqualValues(t, []string{"action", "rpg", "indie"}, user.FavoriteGenres)
	assert.EqualValues(t, []string{}, f.server.User("bob").FavoritePlatforms)

	restored := f.reopen()
	require.NoError(t, restored.Restore(ctx))
	assert.EqualValues(t, "bob@example.com", restored.User().Email)

	_, err = f.store.Signup(ctx, session.SignupForm{
		Username:        "alice",
		Email:           "alice2@example.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
	})
	assert.EqualValues(t, "Username already exists", err.Error())
	assert.False(t, session.IsValidationError(err))
}

func Test_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Login(ctx, "alice", "")
	assert.True(t, session.IsValidationError(err))

	_, err = f.store.Login(ctx, "alice", "wrong")
	assert.EqualValues(t, "Invalid username or password", err.Error())
	ae, ok := gamescout.AsAPIError(err)
	assert.True(t, ok)
	assert.EqualValues(t, http.StatusUnauthorized, ae.StatusCode)
	assert.False(t, f.store.LoggedIn())

	f.server.FailOnce(http.MethodPost, "/api/auth/login", http.StatusInternalServerError, "")
	_, err = f.store.Login(ctx, "alice", "hunter22")
	assert.EqualValues(t, "Login failed", err.Error())

	user, err := f.store.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.EqualValues(t, "alice", user.Username)

	// stored identity is kept as the server sent it
	restored := f.reopen()
	require.NoError(t, restored.Restore(ctx))
	assert.EqualValues(t, []string{"rpg", "indie"}, restored.User().FavoriteGenres)

	me, err := restored.Refresh(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, "alice@example.com", me.Email)
}

func Test_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)

	require.NoError(t, f.store.Logout(ctx))
	assert.False(t, f.store.LoggedIn())
	assert.Nil(t, f.store.User())

	token, user, err := f.storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	_, err = f.store.Refresh(ctx)
	assert.EqualValues(t, session.ErrNotLoggedIn, errors.Cause(err))
}

func Test_RestoreExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storage.Save(ctx, f.server.ExpiredToken("alice"), f.server.User("alice")))

	store := f.reopen()
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.LoggedIn())

	_, user, err := f.storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func Test_UpdatePreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.UpdatePreferences(ctx, []string{"Action"}, nil, nil)
	assert.EqualValues(t, session.ErrNotLoggedIn, errors.Cause(err))

	_, err = f.store.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)

	hookCalls := 0
	hook := func(ctx context.Context) error {
		hookCalls++
		// the identity is already updated when the hook runs
		assert.EqualValues(t, []string{"Action", "RPG"}, f.store.User().FavoriteGenres)
		return nil
	}

	user, err := f.store.UpdatePreferences(ctx, []string{"Action", "RPG", "Indie"}, []string{"PC", "Xbox One"}, hook)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hookCalls)
	assert.EqualValues(t, []string{"Action", "RPG"}, user.FavoriteGenres)
	assert.EqualValues(t, []string{"PC"}, user.FavoritePlatforms)

	remote := f.server.User("alice")
	assert.EqualValues(t, []string{"Action", "RPG"}, remote.FavoriteGenres)
	assert.EqualValues(t, []string{"PC"}, remote.FavoritePlatforms)

	restored := f.reopen()
	require.NoError(t, restored.Restore(ctx))
	assert.EqualValues(t, []string{"Action", "RPG"}, restored.User().FavoriteGenres)

	f.server.FailOnce(http.MethodPatch, "/api/auth/preferences", http.StatusBadRequest, "Invalid preferences")
	_, err = f.store.UpdatePreferences(ctx, []string{"Sports"}, []string{"Xbox One"}, hook)
	assert.EqualValues(t, "Invalid preferences", err.Error())
	assert.EqualValues(t, 1, hookCalls)
	assert.EqualValues(t, []string{"Action", "RPG"}, f.store.User().FavoriteGenres)

	f.server.FailOnce(http.MethodPatch, "/api/auth/preferences", http.StatusBadGateway, "")
	_, err = f.store.UpdatePreferences(ctx, []string{"Sports"}, nil, nil)
	assert.EqualValues(t, "Update failed", err.Error())
}

func Test_Adopt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Adopt(ctx, f.server.ExpiredToken("alice"))
	assert.Error(t, err)
	assert.False(t, f.store.LoggedIn())

	_, err = f.store.Adopt(ctx, "not-a-jwt")
	assert.EqualValues(t, session.LoginFailed, err.Error())
	assert.False(t, f.store.LoggedIn())

	user, err := f.store.Adopt(ctx, f.server.Token("alice"))
	require.NoError(t, err)
	assert.EqualValues(t, "alice", user.Username)
	assert.True(t, f.store.LoggedIn())

	token, stored, err := f.storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, stored)
}
