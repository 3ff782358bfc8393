package wishlist

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gamescout/scout/collection"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/mansion"
	"github.com/gamescout/scout/render"
)

var listArgs = struct {
	status *string
}{}

var statusArgs = struct {
	id     *int64
	status *string
}{}

var removeArgs = struct {
	id *int64
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("wishlist", "Manage your collection of saved games.")

	listCmd := cmd.Command("list", "List saved games.").Default()
	listArgs.status = listCmd.Flag("status", "Only show games with this status").Default(string(collection.FilterAll)).Enum(
		string(collection.FilterAll),
		string(collection.FilterWishlist),
		string(collection.FilterPlayed),
	)
	ctx.Register(listCmd, doList)

	statusCmd := cmd.Command("status", "Change the status of a saved game.")
	statusArgs.id = statusCmd.Arg("id", "Entry ID, as listed by `scout wishlist`").Required().Int64()
	statusArgs.status = statusCmd.Arg("status", "New status").Required().Enum(
		string(gamescout.StatusWishlist),
		string(gamescout.StatusPlayed),
	)
	ctx.Register(statusCmd, doStatus)

	removeCmd := cmd.Command("remove", "Remove a game from your collection.")
	removeArgs.id = removeCmd.Arg("id", "Entry ID, as listed by `scout wishlist`").Required().Int64()
	ctx.Register(removeCmd, doRemove)
}

func doList(ctx *mansion.Context) {
	ctx.Must(List(ctx, collection.Filter(*listArgs.status)))
}

func doStatus(ctx *mansion.Context) {
	ctx.MustAlert(SetStatus(ctx, *statusArgs.id, gamescout.Status(*statusArgs.status)))
}

func doRemove(ctx *mansion.Context) {
	ctx.MustAlert(Remove(ctx, *removeArgs.id))
}

func List(ctx *mansion.Context, filter collection.Filter) error {
	ctx.MustLogin()
	c := ctx.Collection()

	err := c.FetchAll(context.Background())
	if err != nil {
		return err
	}

	games := c.Filter(filter)
	counts := c.Counts()
	comm.ResultOrPrint(&mansion.CollectionResult{
		Type:   "collection",
		Filter: string(filter),
		Counts: counts,
		Games:  games,
	}, func() {
		comm.Logf("All (%d) | Wishlist (%d) | Played (%d)", counts.All, counts.Wishlist, counts.Played)
		if len(games) == 0 {
			if filter == collection.FilterAll {
				comm.Logf("Your collection is empty. Find games with `scout search`, save them with `scout show <id> --wishlist`.")
			} else {
				comm.Logf("No %s games.", filter)
			}
			return
		}
		render.Collection(os.Stdout, games, time.Now())
	})
	return nil
}

func SetStatus(ctx *mansion.Context, id int64, status gamescout.Status) error {
	ctx.MustLogin()
	c := ctx.Collection()

	err := c.SetStatus(context.Background(), id, status)
	if err != nil {
		return err
	}

	comm.Statf("Entry %d is now %s", id, render.Status(string(status)))
	comm.Result(map[string]string{"status": "success"})
	return nil
}

func Remove(ctx *mansion.Context, id int64) error {
	ctx.MustLogin()
	c := ctx.Collection()

	err := c.FetchAll(context.Background())
	if err != nil {
		comm.Warnf("%s", err.Error())
	}
	if g := c.Find(id); g != nil {
		comm.Logf("%s (%s)", g.Title, render.Status(string(g.Status)))
	}

	removed, err := c.Remove(context.Background(), id, comm.YesNo)
	if err != nil {
		return err
	}
	if !removed {
		comm.Log("Okay, keeping it.")
		return nil
	}

	comm.Statf("Removed entry %s", strconv.FormatInt(id, 10))
	comm.Result(map[string]string{"status": "success"})
	return nil
}
