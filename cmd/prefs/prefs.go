package prefs

import (
	"context"
	"strings"

	"github.com/gamescout/scout/cmd/whoami"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
	"github.com/gamescout/scout/recommend"
	"github.com/gamescout/scout/render"
	"github.com/gamescout/scout/session"
)

var args = struct {
	genres       *[]string
	toggleGenres *[]string
	platform     *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("prefs", "Show or change your favorite genres and platform.")
	args.genres = cmd.Flag("genre", "Replace favorite genres (up to 2, repeatable)").Strings()
	args.toggleGenres = cmd.Flag("toggle-genre", "Add or remove one favorite genre (repeatable)").Strings()
	args.platform = cmd.Flag("platform", "Set favorite platform").String()
	ctx.Register(cmd, do)
}

type Params struct {
	Genres       []string
	ToggleGenres []string
	Platform     string
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, &Params{
		Genres:       *args.genres,
		ToggleGenres: *args.toggleGenres,
		Platform:     *args.platform,
	}))
}

func Do(ctx *mansion.Context, params *Params) error {
	store := ctx.MustLogin()
	user := store.User()

	if len(params.Genres) == 0 && len(params.ToggleGenres) == 0 && params.Platform == "" {
		comm.ResultOrPrint(&mansion.UserResult{Type: "user", User: user}, func() {
			whoami.Print(user)
			comm.Logf("")
			comm.Logf("Known genres: %s", strings.Join(session.Genres, ", "))
			comm.Logf("Known platforms: %s", strings.Join(session.Platforms, ", "))
		})
		return nil
	}

	editor := session.NewEditor(user.FavoriteGenres, user.FavoritePlatforms)
	genres := editor.Genres()
	if len(params.Genres) > 0 {
		genres = ResolveGenres(params.Genres)
	}
	editor = session.NewEditor(genres, editor.Platforms())
	for _, g := range ResolveGenres(params.ToggleGenres) {
		if !editor.ToggleGenre(g) {
			comm.Warnf("Can't add %s: at most %d genres can be picked, toggle one off first", g, session.MaxGenres)
		}
	}
	if params.Platform != "" {
		editor.SelectPlatform(ResolvePlatform(params.Platform))
	}

	recommender := recommend.New(ctx.Client(), ctx.Consumer())
	updated, err := store.UpdatePreferences(context.Background(), editor.Genres(), editor.Platforms(), recommender.AfterPreferencesUpdate)
	if err != nil {
		if updated == nil {
			return err
		}
		comm.Warnf("Preferences saved, but: %s", err.Error())
	}

	comm.ResultOrPrint(&mansion.UserResult{Type: "user", User: updated}, func() {
		comm.Statf("Preferences updated")
		whoami.Print(updated)
		if view := recommender.View(); view != nil {
			comm.Logf("%s match your new preferences (see `scout recommend`)",
				render.Count(int64(len(view.PreferenceBased)), "game"))
		}
	})
	return nil
}

// ResolveGenres normalizes genre names, and warns about ones that
// look like typos of a known genre.
func ResolveGenres(raw []string) []string {
	var res []string
	for _, item := range raw {
		for _, g := range strings.Split(item, ",") {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if suggestion, ok := session.SuggestGenre(g); ok {
				comm.Warnf("Unknown genre %q, did you mean %q?", g, suggestion)
			}
			res = append(res, session.NormalizeGenre(g))
		}
	}
	return res
}

// ResolvePlatform returns the known platform matching raw, ignoring
// case. Unknown platforms are kept as given.
func ResolvePlatform(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, p := range session.Platforms {
		if strings.EqualFold(p, raw) {
			return p
		}
	}
	comm.Warnf("Unknown platform %q, known ones are: %s", raw, strings.Join(session.Platforms, ", "))
	return raw
}
