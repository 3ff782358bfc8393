// Package recommend holds the two recommendation lists computed by
// the server for the logged-in user.
package recommend

import (
	"context"
	"sync"

	"github.com/gamescout/scout/gamescout"
	"github.com/itchio/wharf/state"
)

const (
	// EmptyMessage is shown when both lists came back empty.
	EmptyMessage = "No recommendations yet"
	LoadFailed   = "Failed to load recommendations"
)

// API is the part of the API client the recommender needs.
type API interface {
	GetRecommendations(ctx context.Context) (*gamescout.GetRecommendationsResponse, error)
}

// View is one set of recommendations. An empty view is a valid
// answer, not an error.
type View struct {
	PreferenceBased []*gamescout.Game
	GenreBased      []*gamescout.Game
}

func (v *View) Empty() bool {
	return v == nil || (len(v.PreferenceBased) == 0 && len(v.GenreBased) == 0)
}

type Recommender struct {
	api      API
	consumer *state.Consumer

	mu   sync.Mutex
	view *View
	busy bool
}

func New(api API, consumer *state.Consumer) *Recommender {
	return &Recommender{
		api:      api,
		consumer: consumer,
	}
}

// View returns the last view that loaded, nil if none did.
func (r *Recommender) View() *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

func (r *Recommender) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Refresh asks the server for fresh recommendations. On failure the
// previous view is kept.
func (r *Recommender) Refresh(ctx context.Context) (*View, error) {
	r.mu.Lock()
	r.busy = true
	r.mu.Unlock()

	res, err := r.api.GetRecommendations(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = false

	if err != nil {
		r.consumer.Warnf("Could not load recommendations: %v", err)
		return r.view, gamescout.NewFailure(err, LoadFailed)
	}

	r.view = &View{
		PreferenceBased: nonNil(res.PreferenceBased),
		GenreBased:      nonNil(res.GenreBased),
	}
	r.consumer.Debugf("Got %d preference-based and %d genre-based recommendations",
		len(r.view.PreferenceBased), len(r.view.GenreBased))
	return r.view, nil
}

// AfterPreferencesUpdate re-fetches recommendations. It is meant to be
// passed as the hook of a preference update.
func (r *Recommender) AfterPreferencesUpdate(ctx context.Context) error {
	_, err := r.Refresh(ctx)
	return err
}

func nonNil(games []*gamescout.Game) []*gamescout.Game {
	if games == nil {
		return []*gamescout.Game{}
	}
	return games
}
