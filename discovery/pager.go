package discovery

import (
	"context"
	"sync"

	"github.com/gamescout/scout/gamescout"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

const DefaultPageSize = 20

// LoadFailed is shown when the server didn't say why a load failed.
const LoadFailed = "Failed to load games"

// ErrSuperseded is returned by a load whose response arrived after a
// newer load was started. Its results were discarded.
var ErrSuperseded = errors.New("superseded by a newer load")

var (
	ErrBusy        = errors.New("a load is already in flight")
	ErrNoMorePages = errors.New("no more pages to load")
)

// Searcher is the part of the API client the pager needs.
type Searcher interface {
	SearchGames(ctx context.Context, params gamescout.SearchGamesParams) (*gamescout.SearchGamesResponse, error)
}

// State is a snapshot of what the pager holds.
type State struct {
	Criteria Criteria
	Page     int64
	Games    []*gamescout.Game
	HasMore  bool
	Busy     bool
	Count    int64
}

// Pager loads search results page by page. The first page replaces
// the held games, later pages are appended in server order.
type Pager struct {
	searcher Searcher
	pageSize int64
	consumer *state.Consumer

	mu sync.Mutex
	// criteria and page describe games
	criteria Criteria
	page     int64
	games    []*gamescout.Game
	hasMore  bool
	count    int64
	// the criteria of the latest load, successful or not
	requested Criteria
	busy      bool
	seq       int64
}

func NewPager(searcher Searcher, pageSize int64, consumer *state.Consumer) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		searcher:  searcher,
		pageSize:  pageSize,
		consumer:  consumer,
		criteria:  DefaultCriteria(),
		requested: DefaultCriteria(),
	}
}

func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return State{
		Criteria: p.criteria,
		Page:     p.page,
		Games:    append([]*gamescout.Game{}, p.games...),
		HasMore:  p.hasMore,
		Busy:     p.busy,
		Count:    p.count,
	}
}

// Load fetches one page for criteria. If the fetch fails, the held
// games are left untouched.
//
// Pages past the first only continue the held results: for other
// criteria the first page is loaded instead, and the page must follow
// the last one loaded.
func (p *Pager) Load(ctx context.Context, criteria Criteria, page int64) error {
	p.mu.Lock()
	if page > 1 {
		switch {
		case criteria != p.criteria:
			p.consumer.Debugf("Criteria changed, loading page 1 instead of %d", page)
			page = 1
		case p.busy:
			p.mu.Unlock()
			return errors.WithStack(ErrBusy)
		case !p.hasMore:
			p.mu.Unlock()
			return errors.WithStack(ErrNoMorePages)
		case page != p.page+1:
			held := p.page
			p.mu.Unlock()
			return errors.Errorf("page %d does not follow page %d", page, held)
		}
	}
	seq := p.startLocked(criteria)
	p.mu.Unlock()

	return p.fetch(ctx, seq, criteria, page)
}

// LoadMore fetches the next page for the current criteria. It does
// nothing and returns false while a load is in flight, or once the
// last page was loaded.
func (p *Pager) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.busy || !p.hasMore {
		p.mu.Unlock()
		return false, nil
	}
	criteria := p.criteria
	page := p.page + 1
	seq := p.startLocked(criteria)
	p.mu.Unlock()

	return true, p.fetch(ctx, seq, criteria, page)
}

// Apply reloads from the first page, whether or not the criteria
// changed.
func (p *Pager) Apply(ctx context.Context, a Apply) error {
	p.consumer.Debugf("Applying criteria (trigger %d)", a.Trigger)
	return p.Load(ctx, a.Criteria, 1)
}

// Refresh reloads the first page for the latest requested criteria.
func (p *Pager) Refresh(ctx context.Context) error {
	p.mu.Lock()
	criteria := p.requested
	p.mu.Unlock()

	return p.Load(ctx, criteria, 1)
}

func (p *Pager) startLocked(criteria Criteria) int64 {
	p.seq++
	p.busy = true
	p.requested = criteria
	return p.seq
}

func (p *Pager) fetch(ctx context.Context, seq int64, criteria Criteria, page int64) error {
	res, err := p.searcher.SearchGames(ctx, gamescout.SearchGamesParams{
		Search:        criteria.Search,
		Genres:        criteria.Genres,
		Platforms:     criteria.Platforms,
		ReleaseFilter: criteria.ReleaseFilter,
		Page:          page,
		PageSize:      p.pageSize,
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		p.consumer.Debugf("Discarding results of load %d, load %d is newer", seq, p.seq)
		return errors.WithStack(ErrSuperseded)
	}
	p.busy = false

	if err != nil {
		p.consumer.Warnf("Loading page %d: %v", page, err)
		return gamescout.NewFailure(err, LoadFailed)
	}

	if page <= 1 {
		p.games = append([]*gamescout.Game{}, res.Results...)
		page = 1
	} else {
		p.games = append(p.games, res.Results...)
	}
	p.criteria = criteria
	p.page = page
	p.hasMore = res.Next != nil
	p.count = res.Count
	return nil
}

// IsSuperseded returns true if err reports discarded results.
func IsSuperseded(err error) bool {
	return errors.Cause(err) == ErrSuperseded
}
