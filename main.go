package main

import (
	"log"
	"os"

	"github.com/gamescout/scout/buildinfo"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
	"gopkg.in/alecthomas/kingpin.v2"
)

var app = kingpin.New("scout", "Discover games and keep track of the ones you want to play")

var appArgs = struct {
	json       *bool
	quiet      *bool
	verbose    *bool
	assumeYes  *bool
	timestamps *bool
}{
	app.Flag("json", "Enable machine-readable JSON-lines output").Short('j').Bool(),
	app.Flag("quiet", "Hide extra info").Short('q').Bool(),
	app.Flag("verbose", "Display as much extra info as possible").Short('v').Bool(),
	app.Flag("assume-yes", "Don't ask questions, always answer yes").Short('y').Bool(),
	app.Flag("timestamps", "Prefix all output by timestamps (for logging purposes)").Bool(),
}

func main() {
	ctx := mansion.NewContext(app)
	ctx.Version = buildinfo.Version
	ctx.Commit = buildinfo.Commit

	app.Flag("address", "GameScout server to talk to (default: $"+mansion.EnvAddress+", config.toml, then "+mansion.DefaultAddress+")").Short('a').StringVar(&ctx.Address)
	app.Flag("dbpath", "Path of the local database").PlaceHolder("PATH").StringVar(&ctx.DBPath)
	app.Flag("config", "Path of config.toml").PlaceHolder("PATH").StringVar(&ctx.ConfigPath)
	app.Flag("page-size", "Games per search page").Int64Var(&ctx.PageSize)
	app.Flag("user-agent", "String to include in our user-agent").Hidden().StringVar(&ctx.UserAgentAddition)

	registerCommands(ctx)

	app.UsageTemplate(kingpin.CompactUsageTemplate)
	app.HelpFlag.Short('h')
	app.Version(buildinfo.VersionString)
	app.VersionFlag.Short('V')

	cmd, err := app.Parse(os.Args[1:])
	if *appArgs.timestamps {
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	} else {
		log.SetFlags(0)
	}

	ctx.Quiet = *appArgs.quiet
	ctx.Verbose = *appArgs.verbose
	ctx.JSON = *appArgs.json
	ctx.AssumeYes = *appArgs.assumeYes
	comm.Configure(ctx.Quiet, ctx.Verbose, ctx.JSON, ctx.AssumeYes)

	fullCmd := kingpin.MustParse(cmd, err)
	do := ctx.Commands[fullCmd]
	if do == nil {
		comm.Dief("Unknown command: %s", fullCmd)
	}

	ctx.Must(ctx.Resolve())
	defer ctx.Close()
	do(ctx)
}
