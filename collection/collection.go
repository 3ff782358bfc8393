// Package collection holds the user's saved games and applies
// changes to them once the server confirmed them.
package collection

import (
	"context"
	"sync"

	"github.com/gamescout/scout/gamescout"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

// RemovePrompt is what the user must agree to before a removal.
const RemovePrompt = "Are you sure you want to remove this game from your collection?"

// Shown when the server didn't say what went wrong.
const (
	LoadFailed   = "Failed to load collection"
	AddFailed    = "Failed to add game"
	UpdateFailed = "Failed to update game"
	RemoveFailed = "Failed to remove game"
)

var ErrInvalidStatus = errors.New("Status must be wishlist or played")

// API is the part of the API client the collection needs.
type API interface {
	ListWishlist(ctx context.Context) (*gamescout.ListWishlistResponse, error)
	AddToWishlist(ctx context.Context, params gamescout.AddToWishlistParams) (*gamescout.WishlistGameResponse, error)
	UpdateWishlistGame(ctx context.Context, id int64, status gamescout.Status) (*gamescout.WishlistGameResponse, error)
	RemoveFromWishlist(ctx context.Context, id int64) error
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

type Collection struct {
	api      API
	consumer *state.Consumer

	mu    sync.Mutex
	games []*gamescout.WishlistGame
}

func New(api API, consumer *state.Consumer) *Collection {
	return &Collection{
		api:      api,
		consumer: consumer,
	}
}

// Projection is what gets stored about a catalog game.
func Projection(game *gamescout.Game, status gamescout.Status) gamescout.AddToWishlistParams {
	return gamescout.AddToWishlistParams{
		RawgID:      game.ID,
		Title:       game.Name,
		CoverImage:  game.BackgroundImage,
		Rating:      game.Rating,
		ReleaseDate: game.Released,
		Status:      status,
		Genres:      game.GenreNames(),
		Platforms:   game.PlatformNames(),
	}
}

// FetchAll replaces the held games with the server's. On failure
// the held games are kept.
func (c *Collection) FetchAll(ctx context.Context) error {
	res, err := c.api.ListWishlist(ctx)
	if err != nil {
		return gamescout.NewFailure(err, LoadFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.games = append([]*gamescout.WishlistGame{}, res.Games...)
	return nil
}

// Games returns the held games, most recently added first.
func (c *Collection) Games() []*gamescout.WishlistGame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*gamescout.WishlistGame{}, c.games...)
}

// Find returns a held game by entry ID.
func (c *Collection) Find(id int64) *gamescout.WishlistGame {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, g := c.findLocked(id)
	return g
}

func (c *Collection) findLocked(id int64) (int, *gamescout.WishlistGame) {
	for i, g := range c.games {
		if g.ID == id {
			return i, g
		}
	}
	return -1, nil
}

// Upsert saves a catalog game with the given status. If the game
// already is in the collection, only its status changes.
func (c *Collection) Upsert(ctx context.Context, game *gamescout.Game, status gamescout.Status) (*gamescout.WishlistGame, error) {
	if !status.Valid() {
		return nil, errors.WithStack(ErrInvalidStatus)
	}

	res, err := c.api.AddToWishlist(ctx, Projection(game, status))
	if err != nil {
		return nil, gamescout.NewFailure(err, AddFailed)
	}
	if res.Game == nil {
		return nil, &gamescout.Failure{Message: AddFailed, Err: errors.New("server sent no game")}
	}
	c.consumer.Infof("%s", res.Message)

	c.mu.Lock()
	defer c.mu.Unlock()

	saved := res.Game
	for i, g := range c.games {
		if g.RawgID == saved.RawgID {
			c.games[i] = saved
			return saved, nil
		}
	}
	c.games = append([]*gamescout.WishlistGame{saved}, c.games...)
	return saved, nil
}

// SetStatus changes the status of a saved game. The held game only
// changes once the server confirmed.
func (c *Collection) SetStatus(ctx context.Context, id int64, status gamescout.Status) error {
	if !status.Valid() {
		return errors.WithStack(ErrInvalidStatus)
	}

	res, err := c.api.UpdateWishlistGame(ctx, id, status)
	if err != nil {
		return gamescout.NewFailure(err, UpdateFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, g := c.findLocked(id)
	if g == nil {
		return nil
	}
	if res.Game != nil {
		c.games[i] = res.Game
	} else {
		updated := *g
		updated.Status = status
		c.games[i] = &updated
	}
	return nil
}

// Remove deletes a saved game, if confirm agrees to RemovePrompt.
// It returns false when the user declined.
func (c *Collection) Remove(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	if confirm == nil || !confirm(RemovePrompt) {
		c.consumer.Debugf("Removal of %d not confirmed", id)
		return false, nil
	}

	err := c.api.RemoveFromWishlist(ctx, id)
	if err != nil {
		return false, gamescout.NewFailure(err, RemoveFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i, g := c.findLocked(id); g != nil {
		c.games = append(c.games[:i:i], c.games[i+1:]...)
	}
	return true, nil
}
