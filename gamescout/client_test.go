package gamescout_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/scouttest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Login(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", []string{"RPG"}, []string{"PC"})
	c := s.Client("")

	res, err := c.Login(ctx, gamescout.LoginParams{Username: "alice", Password: "hunter22"})
	assert.NoError(err)
	assert.NotEmpty(res.AccessToken)
	assert.EqualValues("alice", res.User.Username)
	assert.EqualValues([]string{"RPG"}, res.User.FavoriteGenres)

	c.SetKey(res.AccessToken)
	me, err := c.GetMe(ctx)
	assert.NoError(err)
	assert.EqualValues("alice@example.com", me.Email)

	_, err = c.Login(ctx, gamescout.LoginParams{Username: "alice", Password: "nope"})
	assert.Error(err)
	ae, ok := gamescout.AsAPIError(err)
	assert.True(ok)
	assert.EqualValues(http.StatusUnauthorized, ae.StatusCode)
	assert.EqualValues("Invalid username or password", gamescout.MessageOf(err, "Login failed"))
}

func Test_Signup(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", nil, nil)
	c := s.Client("")

	res, err := c.Signup(ctx, gamescout.SignupParams{
		Username:          "bob",
		Email:             "bob@example.com",
		Password:          "abcdef",
		FavoriteGenres:    []string{"Indie"},
		FavoritePlatforms: []string{},
	})
	assert.NoError(err)
	assert.NotEmpty(res.AccessToken)
	assert.EqualValues("bob", res.User.Username)

	_, err = c.Signup(ctx, gamescout.SignupParams{Username: "alice", Email: "other@example.com", Password: "abcdef"})
	assert.EqualValues("Username already exists", gamescout.MessageOf(err, "Signup failed"))

	_, err = c.Signup(ctx, gamescout.SignupParams{Username: "carol", Email: "alice@example.com", Password: "abcdef"})
	assert.EqualValues("Email already exists", gamescout.MessageOf(err, "Signup failed"))
}

func Test_MissingToken(t *testing.T) {
	assert := assert.New(t)

	s := scouttest.NewServer(t)
	_, err := s.Client("").ListWishlist(context.Background())
	assert.Error(err)

	ae, ok := gamescout.AsAPIError(err)
	assert.True(ok)
	assert.EqualValues(http.StatusUnauthorized, ae.StatusCode)
	assert.EqualValues("", ae.Message)
	assert.EqualValues("Failed to load games", gamescout.MessageOf(err, "Failed to load games"))
}

func Test_SearchGames(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", nil, nil)
	c := s.Client(s.Token("alice"))

	first, err := c.SearchGames(ctx, gamescout.SearchGamesParams{Page: 1, PageSize: 20})
	assert.NoError(err)
	assert.EqualValues(45, first.Count)
	assert.Len(first.Results, 20)
	assert.NotNil(first.Next)
	assert.Nil(first.Previous)

	last, err := c.SearchGames(ctx, gamescout.SearchGamesParams{Page: 3, PageSize: 20})
	assert.NoError(err)
	assert.Len(last.Results, 5)
	assert.Nil(last.Next)
	assert.NotNil(last.Previous)

	rpgs, err := c.SearchGames(ctx, gamescout.SearchGamesParams{Genres: "role-playing-games-rpg", Page: 1, PageSize: 20})
	assert.NoError(err)
	assert.NotEmpty(rpgs.Results)
	for _, g := range rpgs.Results {
		assert.Contains(g.GenreNames(), "RPG")
	}

	named, err := c.SearchGames(ctx, gamescout.SearchGamesParams{Search: "celeste", Page: 1, PageSize: 20})
	assert.NoError(err)
	assert.EqualValues(5, named.Count)
	assert.EqualValues("Celeste", named.Results[0].Name)
	assert.EqualValues([]string{"PC"}, named.Results[0].PlatformNames())
	assert.NotNil(named.Results[0].Rating)
}

func Test_SearchExcludesPlayed(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", nil, nil)
	c := s.Client(s.Token("alice"))

	catalog := scouttest.DefaultCatalog()
	s.Collect("alice", catalog[0], gamescout.StatusPlayed)
	s.Collect("alice", catalog[1], gamescout.StatusWishlist)

	res, err := c.SearchGames(ctx, gamescout.SearchGamesParams{Page: 1, PageSize: 20})
	assert.NoError(err)
	for _, g := range res.Results {
		assert.NotEqual(catalog[0].ID, g.ID)
	}
	assert.EqualValues(catalog[1].ID, res.Results[0].ID)
}

func Test_GameDetails(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", nil, nil)
	c := s.Client(s.Token("alice"))

	details, err := c.GetGame(ctx, 1002)
	assert.NoError(err)
	assert.EqualValues(1002, details.ID)
	assert.EqualValues("The Witcher 3: Wild Hunt", details.Name)
	assert.NotEmpty(details.DescriptionRaw)
	assert.Len(details.Developers, 1)

	shots, err := c.GetGameScreenshots(ctx, 1002)
	assert.NoError(err)
	assert.Len(shots.Results, 3)

	_, err = c.GetGame(ctx, 42)
	assert.EqualValues("Game not found", gamescout.MessageOf(err, "Failed to load game"))
}

func Test_Wishlist(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	s.AddUser("alice", "alice@example.com", "hunter22", nil, nil)
	c := s.Client(s.Token("alice"))

	g := scouttest.DefaultCatalog()[2]
	params := gamescout.AddToWishlistParams{
		RawgID:      g.ID,
		Title:       g.Name,
		CoverImage:  g.BackgroundImage,
		Rating:      g.Rating,
		ReleaseDate: g.Released,
		Status:      gamescout.StatusWishlist,
		Genres:      g.GenreNames(),
		Platforms:   g.PlatformNames(),
	}

	added, err := c.AddToWishlist(ctx, params)
	assert.NoError(err)
	assert.EqualValues(gamescout.StatusWishlist, added.Game.Status)
	assert.EqualValues([]string{"RPG", "Action"}, added.Game.Genres)

	check, err := c.CheckWishlist(ctx, g.ID)
	assert.NoError(err)
	assert.True(check.InWishlist)
	assert.EqualValues(added.Game.ID, check.Game.ID)

	params.Status = gamescout.StatusPlayed
	upserted, err := c.AddToWishlist(ctx, params)
	assert.NoError(err)
	assert.EqualValues(added.Game.ID, upserted.Game.ID)
	assert.EqualValues(gamescout.StatusPlayed, upserted.Game.Status)
	assert.Len(s.Collection("alice"), 1)

	updated, err := c.UpdateWishlistGame(ctx, added.Game.ID, gamescout.StatusWishlist)
	assert.NoError(err)
	assert.EqualValues(gamescout.StatusWishlist, updated.Game.Status)

	_, err = c.UpdateWishlistGame(ctx, added.Game.ID, gamescout.Status("bogus"))
	assert.EqualValues("Invalid status. Must be: wishlist, played, or interested", gamescout.MessageOf(err, ""))

	entry, err := c.GetWishlistGame(ctx, added.Game.ID)
	assert.NoError(err)
	assert.EqualValues(g.ID, entry.RawgID)

	assert.NoError(c.RemoveFromWishlist(ctx, added.Game.ID))
	assert.Empty(s.Collection("alice"))

	err = c.RemoveFromWishlist(ctx, added.Game.ID)
	assert.EqualValues("Game not found in wishlist", gamescout.MessageOf(err, ""))

	check, err = c.CheckWishlist(ctx, g.ID)
	assert.NoError(err)
	assert.False(check.InWishlist)
	assert.Nil(check.Game)
}

func Test_Catalog(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := scouttest.NewServer(t)
	c := s.Client("")

	genres, err := c.ListGenres(ctx)
	assert.NoError(err)
	assert.Len(genres.Results, 10)

	platforms, err := c.ListPlatforms(ctx)
	assert.NoError(err)
	assert.Len(platforms.Results, 6)
}

func Test_RetryOnUnavailable(t *testing.T) {
	assert := assert.New(t)

	s := scouttest.NewServer(t)
	s.FailOnce(http.MethodGet, "/api/games/genres", http.StatusServiceUnavailable, "")
	c := s.Client("")
	c.RetryPatterns = []time.Duration{time.Millisecond}

	genres, err := c.ListGenres(context.Background())
	assert.NoError(err)
	assert.Len(genres.Results, 10)
	assert.EqualValues(2, s.CountRequests(http.MethodGet, "/api/games/genres"))
}

func Test_NetworkError(t *testing.T) {
	assert := assert.New(t)

	s := scouttest.NewServer(t)
	c := s.Client("")
	s.Close()

	_, err := c.ListGenres(context.Background())
	assert.Error(err)
	assert.True(gamescout.IsNetworkError(err))
	assert.False(gamescout.IsAPIError(err))
	assert.EqualValues("Failed to load games", gamescout.MessageOf(err, "Failed to load games"))
}

func Test_ParseAPIResponse(t *testing.T) {
	assert := assert.New(t)

	respond := func(status int, body string) *http.Response {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		}
	}

	// an error field wins even on 200
	err := gamescout.ParseAPIResponse(&gamescout.User{}, respond(200, `{"error": "Something broke"}`))
	ae, ok := gamescout.AsAPIError(errors.WithStack(err))
	assert.True(ok)
	assert.EqualValues("Something broke", ae.Message)
	assert.EqualValues(200, ae.StatusCode)

	err = gamescout.ParseAPIResponse(nil, respond(500, `<html>oops</html>`))
	ae, ok = gamescout.AsAPIError(err)
	assert.True(ok)
	assert.EqualValues(500, ae.StatusCode)
	assert.EqualValues("GameScout API error (500)", ae.Error())

	assert.NoError(gamescout.ParseAPIResponse(nil, respond(204, ``)))

	u := &gamescout.User{}
	assert.NoError(gamescout.ParseAPIResponse(u, respond(200, `{"id": "12", "username": "alice", "favorite_genres": ["RPG"]}`)))
	assert.EqualValues(12, u.ID)
	assert.EqualValues([]string{"RPG"}, u.FavoriteGenres)

	assert.Error(gamescout.ParseAPIResponse(u, respond(200, `not json`)))
}

func Test_MakePath(t *testing.T) {
	assert := assert.New(t)

	c := gamescout.ClientWithKey("")
	c.SetServer("http://scout.example.com/")
	assert.EqualValues("http://scout.example.com/api", c.BaseURL)
	assert.EqualValues("http://scout.example.com/api/wishlist/12", c.MakePath("/wishlist/%d", 12))

	q := gamescout.NewQuery(c, "/games/search")
	q.AddStringIfNonEmpty("search", "")
	q.AddStringIfNonEmpty("genres", "indie")
	q.AddInt64IfNonZero("page", 2)
	assert.EqualValues("http://scout.example.com/api/games/search?genres=indie&page=2", q.URL())
}
