package search

import (
	"context"
	"os"
	"time"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/discovery"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/mansion"
	"github.com/gamescout/scout/render"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var args = struct {
	query    *string
	genre    *string
	platform *string
	release  *string
	pages    *int64
	reset    *bool
}{}

// criteria flags given on the command line, even if empty
var given = map[string]bool{}

func markGiven(name string) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		given[name] = true
		return nil
	}
}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("search", "Search the game catalog. Criteria are remembered between searches.")
	args.query = cmd.Flag("query", "Text to search for in game names").PlaceHolder("TEXT").Action(markGiven("query")).String()
	args.genre = cmd.Flag("genre", "Genre slug, see `scout genres` (empty for any)").PlaceHolder("SLUG").Action(markGiven("genre")).String()
	args.platform = cmd.Flag("platform", "Platform ID, see `scout platforms` (empty for any)").PlaceHolder("ID").Action(markGiven("platform")).String()
	args.release = cmd.Flag("release", "Release window").Enum(
		string(gamescout.ReleaseFilterBoth),
		string(gamescout.ReleaseFilterUpcoming),
		string(gamescout.ReleaseFilterCurrent),
	)
	args.pages = cmd.Flag("pages", "How many pages to load").Default("1").Int64()
	args.reset = cmd.Flag("reset", "Forget remembered criteria first").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	var p discovery.Partial
	if given["query"] {
		p.Search = args.query
	}
	if given["genre"] {
		p.Genres = args.genre
	}
	if given["platform"] {
		p.Platforms = args.platform
	}
	if *args.release != "" {
		rf := gamescout.ReleaseFilter(*args.release)
		p.ReleaseFilter = &rf
	}
	ctx.Must(Do(ctx, p, *args.reset, *args.pages))
}

func Do(ctx *mansion.Context, p discovery.Partial, reset bool, pages int64) error {
	ctx.MustLogin()
	db, err := ctx.DB()
	if err != nil {
		return err
	}
	bg := context.Background()

	saved, err := discovery.LoadCriteria(bg, db)
	if err != nil {
		return err
	}

	filters := discovery.NewFilters()
	if !reset {
		filters.SetCriteria(saved.Partial())
	}

	pager := discovery.NewPager(ctx.Client(), ctx.PageSize, ctx.Consumer())
	var loadErr error
	filters.Subscribe(func(a discovery.Apply) {
		loadErr = pager.Apply(bg, a)
	})

	a := filters.SetCriteria(p)
	if loadErr != nil {
		return loadErr
	}

	err = discovery.SaveCriteria(bg, db, a.Criteria)
	if err != nil {
		comm.Warnf("Could not remember search criteria: %s", err.Error())
	}

	for i := int64(1); i < pages; i++ {
		loaded, err := pager.LoadMore(bg)
		if err != nil {
			comm.Warnf("%s", err.Error())
			break
		}
		if !loaded {
			break
		}
	}

	state := pager.State()
	comm.ResultOrPrint(&mansion.SearchResult{
		Type:    "search",
		Page:    state.Page,
		Count:   state.Count,
		HasMore: state.HasMore,
		Games:   state.Games,
	}, func() {
		describe(state.Criteria)
		if len(state.Games) == 0 {
			comm.Logf("No games found.")
			return
		}
		render.Games(os.Stdout, state.Games, time.Now())
		comm.Logf("Showing %d of %s", len(state.Games), render.Count(state.Count, "game"))
		if state.HasMore {
			comm.Logf("Use --pages %d to see more.", state.Page+1)
		}
	})
	return nil
}

func describe(c discovery.Criteria) {
	if c == discovery.DefaultCriteria() {
		comm.Opf("Searching all games")
		return
	}
	comm.Opf("Searching for %q, genre %s, platform %s, release %s",
		c.Search, orAny(c.Genres), orAny(c.Platforms), c.ReleaseFilter)
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}
