package configure

import (
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
)

var args = struct {
	address  *string
	pageSize *int64
	dbPath   *string
	show     *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("configure", "Change the settings saved in config.toml.")
	args.address = cmd.Flag("set-address", "GameScout server to use by default").String()
	args.pageSize = cmd.Flag("set-page-size", "Games per search page").Int64()
	args.dbPath = cmd.Flag("set-db-path", "Where to keep the local database").String()
	args.show = cmd.Flag("show", "Only print the current settings").Bool()
	ctx.Register(cmd, do)
}

type Params struct {
	Address  string
	PageSize int64
	DBPath   string
	Show     bool
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, &Params{
		Address:  *args.address,
		PageSize: *args.pageSize,
		DBPath:   *args.dbPath,
		Show:     *args.show,
	}))
}

func Do(ctx *mansion.Context, params *Params) error {
	cfg, err := mansion.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return err
	}

	changed := false
	if params.Address != "" {
		cfg.Address = params.Address
		changed = true
	}
	if params.PageSize > 0 {
		cfg.PageSize = params.PageSize
		changed = true
	}
	if params.DBPath != "" {
		cfg.DBPath = params.DBPath
		changed = true
	}

	if changed && !params.Show {
		err = mansion.SaveConfig(ctx.ConfigPath, cfg)
		if err != nil {
			return err
		}
		comm.Statf("Saved %s", ctx.ConfigPath)
	}

	comm.ResultOrPrint(cfg, func() {
		comm.Logf("Config file: %s", ctx.ConfigPath)
		comm.Logf("  address:   %s", orDefault(cfg.Address, mansion.DefaultAddress))
		comm.Logf("  page_size: %d", cfg.PageSize)
		comm.Logf("  db_path:   %s", orDefault(cfg.DBPath, "app data dir"))
		comm.Logf("In effect: %s, %d games per page, database at %s", ctx.Address, ctx.PageSize, ctx.DBPath)
	})
	return nil
}

func orDefault(s string, def string) string {
	if s == "" {
		return def + " (default)"
	}
	return s
}
