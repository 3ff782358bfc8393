package whoami

import (
	"context"
	"strings"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/mansion"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("whoami", "Show who is logged in, and their preferences.")
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *mansion.Context) error {
	store := ctx.MustLogin()

	user, err := store.Refresh(context.Background())
	if err != nil {
		if !gamescout.IsNetworkError(err) {
			return err
		}
		comm.Warnf("Could not reach %s, showing saved identity", ctx.Address)
		user = store.User()
	}

	comm.ResultOrPrint(&mansion.UserResult{Type: "user", User: user}, func() {
		Print(user)
	})
	return nil
}

// Print shows a user and their preferences.
func Print(user *gamescout.User) {
	comm.Logf("%s <%s>", user.Username, user.Email)
	comm.Logf("  Favorite genres:    %s", orNone(user.FavoriteGenres))
	comm.Logf("  Favorite platforms: %s", orNone(user.FavoritePlatforms))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
