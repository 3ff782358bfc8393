// Package overlay is the detail view of one catalog game, from which
// it can be saved to the collection.
package overlay

import (
	"context"
	"fmt"
	"sync"

	"github.com/gamescout/scout/collection"
	"github.com/gamescout/scout/gamescout"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	LoadFailed   = "Failed to load game details"
	UpdateFailed = "Failed to update status"
)

var (
	ErrNotOpen         = errors.New("no game is open")
	ErrNoGame          = errors.New("no game to open")
	ErrAlreadyInStatus = errors.New("game already has that status")
)

// Status is what the overlay knows about the game's place in the
// collection. It starts out unknown until the existence check answers.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusNone     Status = "none"
	StatusWishlist Status = Status(gamescout.StatusWishlist)
	StatusPlayed   Status = Status(gamescout.StatusPlayed)
)

// API is the part of the API client the overlay needs.
type API interface {
	GetGame(ctx context.Context, gameID int64) (*gamescout.GameDetails, error)
	GetGameScreenshots(ctx context.Context, gameID int64) (*gamescout.GetGameScreenshotsResponse, error)
	CheckWishlist(ctx context.Context, rawgID int64) (*gamescout.CheckWishlistResponse, error)
}

// Upserter saves a game to the collection. *collection.Collection
// is one.
type Upserter interface {
	Upsert(ctx context.Context, game *gamescout.Game, status gamescout.Status) (*gamescout.WishlistGame, error)
}

var _ Upserter = (*collection.Collection)(nil)

type Overlay struct {
	api      API
	upserter Upserter
	consumer *state.Consumer
	onClose  func()

	mu          sync.Mutex
	seq         int64
	game        *gamescout.Game
	details     *gamescout.GameDetails
	screenshots []*gamescout.Screenshot
	status      Status
	message     string
}

// New returns a closed overlay. onClose, if set, is called every time
// the overlay closes, so the caller can refresh what it lists.
func New(api API, upserter Upserter, consumer *state.Consumer, onClose func()) *Overlay {
	return &Overlay{
		api:      api,
		upserter: upserter,
		consumer: consumer,
		onClose:  onClose,
		status:   StatusUnknown,
	}
}

// Open shows game. Details and screenshots are fetched together while
// the existence check runs on its own: either may finish first, and a
// failed check only leaves the status unknown. Open returns once both
// are done.
//
// game may carry only an ID, in which case it is filled in from the
// details once they load.
func (o *Overlay) Open(ctx context.Context, game *gamescout.Game) error {
	if game == nil {
		return errors.WithStack(ErrNoGame)
	}

	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.game = game
	o.details = nil
	o.screenshots = nil
	o.status = StatusUnknown
	o.message = ""
	o.mu.Unlock()

	checkDone := make(chan struct{})
	go func() {
		defer close(checkDone)
		o.check(ctx, seq, game.ID)
	}()

	var details *gamescout.GameDetails
	var screenshots []*gamescout.Screenshot
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		res, err := o.api.GetGame(egCtx, game.ID)
		if err != nil {
			return errors.WithMessage(err, "fetching details")
		}
		details = res
		return nil
	})
	eg.Go(func() error {
		res, err := o.api.GetGameScreenshots(egCtx, game.ID)
		if err != nil {
			return errors.WithMessage(err, "fetching screenshots")
		}
		screenshots = res.Results
		return nil
	})
	err := eg.Wait()

	if err == nil {
		o.mu.Lock()
		if o.seq == seq {
			o.details = details
			o.screenshots = screenshots
			if o.game.Name == "" {
				o.game = &details.Game
			}
		}
		o.mu.Unlock()
	}

	<-checkDone

	if err != nil {
		o.consumer.Warnf("Could not load game %d: %v", game.ID, err)
		return gamescout.NewFailure(err, LoadFailed)
	}
	return nil
}

func (o *Overlay) check(ctx context.Context, seq int64, rawgID int64) {
	res, err := o.api.CheckWishlist(ctx, rawgID)
	if err != nil {
		o.consumer.Warnf("Could not check collection for game %d: %v", rawgID, err)
		return
	}

	status := StatusNone
	if res.InWishlist && res.Game != nil {
		if !res.Game.Status.Valid() {
			// saved by another client with a status we don't offer
			o.consumer.Infof("Game %d is saved as %q, leaving its status unknown", rawgID, res.Game.Status)
			return
		}
		status = Status(res.Game.Status)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seq != seq || o.status != StatusUnknown {
		return
	}
	o.status = status
}

func (o *Overlay) Game() *gamescout.Game {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.game
}

// Details is nil until they loaded.
func (o *Overlay) Details() *gamescout.GameDetails {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.details
}

func (o *Overlay) Screenshots() []*gamescout.Screenshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*gamescout.Screenshot{}, o.screenshots...)
}

func (o *Overlay) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Message is the outcome of the last status change, if any.
func (o *Overlay) Message() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.message
}

// CanSet returns false for the status the game is confirmed to have.
func (o *Overlay) CanSet(status gamescout.Status) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.game != nil && status.Valid() && o.status != Status(status)
}

// SetStatus saves the open game to the collection with status. The
// displayed status only changes once the server confirmed it.
func (o *Overlay) SetStatus(ctx context.Context, status gamescout.Status) (string, error) {
	if !status.Valid() {
		return "", errors.WithStack(collection.ErrInvalidStatus)
	}

	o.mu.Lock()
	game := o.game
	seq := o.seq
	current := o.status
	o.mu.Unlock()

	if game == nil {
		return "", errors.WithStack(ErrNotOpen)
	}
	if current == Status(status) {
		return "", errors.WithStack(ErrAlreadyInStatus)
	}

	_, err := o.upserter.Upsert(ctx, game, status)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seq != seq {
		if err != nil {
			return "", gamescout.NewFailure(err, UpdateFailed)
		}
		return fmt.Sprintf("Status updated to %s!", status), nil
	}

	if err != nil {
		failure := gamescout.NewFailure(err, UpdateFailed)
		o.message = failure.Error()
		return "", failure
	}
	o.status = Status(status)
	o.message = fmt.Sprintf("Status updated to %s!", status)
	return o.message, nil
}

// Close forgets the open game and lets the caller know.
func (o *Overlay) Close() {
	o.mu.Lock()
	wasOpen := o.game != nil
	o.seq++
	o.game = nil
	o.details = nil
	o.screenshots = nil
	o.status = StatusUnknown
	o.message = ""
	o.mu.Unlock()

	if wasOpen && o.onClose != nil {
		o.onClose()
	}
}
