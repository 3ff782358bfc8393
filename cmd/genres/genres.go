package genres

import (
	"context"
	"os"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/discovery"
	"github.com/gamescout/scout/mansion"
	"github.com/olekukonko/tablewriter"
)

var args = struct {
	refresh *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("genres", "List catalog genres, for `scout search --genre`.")
	args.refresh = cmd.Flag("refresh", "Ignore the cached list").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.refresh))
}

func Do(ctx *mansion.Context, refresh bool) error {
	db, err := ctx.DB()
	if err != nil {
		return err
	}

	catalog := discovery.NewCatalog(ctx.Client(), db, ctx.Consumer())
	genres, err := catalog.Genres(context.Background(), refresh)
	if err != nil {
		return err
	}

	comm.ResultOrPrint(genres, func() {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Slug", "Name"})
		for _, g := range genres {
			table.Append([]string{g.Slug, g.Name})
		}
		table.Render()
		comm.Logf("%d genres", len(genres))
	})
	return nil
}

