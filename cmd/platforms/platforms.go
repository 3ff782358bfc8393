package platforms

import (
	"context"
	"fmt"
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
	cmd := ctx.App.Command("platforms", "List catalog platforms, for `scout search --platform`.")
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
	platforms, err := catalog.Platforms(context.Background(), refresh)
	if err != nil {
		return err
	}

	comm.ResultOrPrint(platforms, func() {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name"})
		for _, p := range platforms {
			table.Append([]string{fmt.Sprintf("%d", p.ID), p.Name})
		}
		table.Render()
	})
	return nil
}
