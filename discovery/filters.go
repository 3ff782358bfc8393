// Package discovery drives the game search: the criteria the user
// picked, and the pages of results loaded for them.
package discovery

import (
	"sync"

	"github.com/gamescout/scout/gamescout"
)

// Criteria are the search parameters. Genres holds a genre slug and
// Platforms a platform ID; empty means any.
type Criteria struct {
	Search        string                  `json:"search"`
	Genres        string                  `json:"genres"`
	Platforms     string                  `json:"platforms"`
	ReleaseFilter gamescout.ReleaseFilter `json:"release_filter"`
}

func DefaultCriteria() Criteria {
	return Criteria{
		ReleaseFilter: gamescout.ReleaseFilterBoth,
	}
}

// Partial changes some criteria. Nil fields are left as they are.
type Partial struct {
	Search        *string
	Genres        *string
	Platforms     *string
	ReleaseFilter *gamescout.ReleaseFilter
}

// Apply asks for results to be fetched again for Criteria, starting
// from the first page. Trigger increases with every Apply, even when
// Criteria didn't change.
type Apply struct {
	Criteria Criteria
	Trigger  int64
}

// Filters holds the current criteria.
type Filters struct {
	mu          sync.Mutex
	criteria    Criteria
	trigger     int64
	subscribers []func(Apply)
}

func NewFilters() *Filters {
	return &Filters{
		criteria: DefaultCriteria(),
	}
}

// Subscribe registers fn to receive every Apply, in order.
func (f *Filters) Subscribe(fn func(Apply)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

func (f *Filters) Criteria() Criteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.criteria
}

// SetCriteria merges p into the current criteria and emits an Apply.
// Unknown release filters fall back to both.
func (f *Filters) SetCriteria(p Partial) Apply {
	f.mu.Lock()
	c := f.criteria
	if p.Search != nil {
		c.Search = *p.Search
	}
	if p.Genres != nil {
		c.Genres = *p.Genres
	}
	if p.Platforms != nil {
		c.Platforms = *p.Platforms
	}
	if p.ReleaseFilter != nil {
		c.ReleaseFilter = *p.ReleaseFilter
	}
	switch c.ReleaseFilter {
	case gamescout.ReleaseFilterBoth, gamescout.ReleaseFilterUpcoming, gamescout.ReleaseFilterCurrent:
	default:
		c.ReleaseFilter = gamescout.ReleaseFilterBoth
	}
	return f.emitLocked(c)
}

// Reset restores DefaultCriteria and emits an Apply, even if the
// criteria already were the defaults.
func (f *Filters) Reset() Apply {
	f.mu.Lock()
	return f.emitLocked(DefaultCriteria())
}

// emitLocked must be called with f.mu held, and releases it.
func (f *Filters) emitLocked(c Criteria) Apply {
	f.criteria = c
	f.trigger++
	a := Apply{
		Criteria: c,
		Trigger:  f.trigger,
	}
	subscribers := append([]func(Apply){}, f.subscribers...)
	f.mu.Unlock()

	for _, fn := range subscribers {
		fn(a)
	}
	return a
}
