package main

import (
	"github.com/gamescout/scout/cmd/configure"
	"github.com/gamescout/scout/cmd/genres"
	"github.com/gamescout/scout/cmd/login"
	"github.com/gamescout/scout/cmd/logout"
	"github.com/gamescout/scout/cmd/platforms"
	"github.com/gamescout/scout/cmd/prefs"
	"github.com/gamescout/scout/cmd/recommend"
	"github.com/gamescout/scout/cmd/search"
	"github.com/gamescout/scout/cmd/show"
	"github.com/gamescout/scout/cmd/signup"
	"github.com/gamescout/scout/cmd/version"
	"github.com/gamescout/scout/cmd/whoami"
	"github.com/gamescout/scout/cmd/wishlist"
	"github.com/gamescout/scout/mansion"
)

// Each of these specify their own arguments and flags in
// their own package.
func registerCommands(ctx *mansion.Context) {
	// account

	login.Register(ctx)
	signup.Register(ctx)
	logout.Register(ctx)
	whoami.Register(ctx)
	prefs.Register(ctx)

	// discovery

	search.Register(ctx)
	show.Register(ctx)
	recommend.Register(ctx)
	genres.Register(ctx)
	platforms.Register(ctx)

	// collection

	wishlist.Register(ctx)

	// misc

	configure.Register(ctx)
	version.Register(ctx)
}
