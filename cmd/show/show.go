package show

import (
	"context"
	"os"
	"time"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/mansion"
	"github.com/gamescout/scout/overlay"
	"github.com/gamescout/scout/render"
	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"
)

var args = struct {
	id       *int64
	wishlist *bool
	played   *bool
	open     *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("show", "Show the details of a game, and optionally save it to your collection.")
	args.id = cmd.Arg("id", "Catalog ID of the game, as listed by `scout search`").Required().Int64()
	args.wishlist = cmd.Flag("wishlist", "Add the game to your wishlist").Bool()
	args.played = cmd.Flag("played", "Mark the game as played").Bool()
	args.open = cmd.Flag("open", "Open the game's website in a browser").Bool()
	ctx.Register(cmd, do)
}

type Params struct {
	ID     int64
	Status gamescout.Status
	Open   bool
}

func do(ctx *mansion.Context) {
	params := &Params{
		ID:   *args.id,
		Open: *args.open,
	}
	switch {
	case *args.wishlist && *args.played:
		comm.Dief("Pick one of --wishlist and --played")
	case *args.wishlist:
		params.Status = gamescout.StatusWishlist
	case *args.played:
		params.Status = gamescout.StatusPlayed
	}
	ctx.Must(Do(ctx, params))
}

func Do(ctx *mansion.Context, params *Params) error {
	ctx.MustLogin()
	bg := context.Background()

	o := overlay.New(ctx.Client(), ctx.Collection(), ctx.Consumer(), func() {
		comm.Debugf("Closed game %d", params.ID)
	})
	defer o.Close()

	err := o.Open(bg, &gamescout.Game{ID: params.ID})
	if err != nil {
		return err
	}

	if params.Status != "" {
		msg, err := o.SetStatus(bg, params.Status)
		if err != nil {
			if errors.Cause(err) == overlay.ErrAlreadyInStatus {
				comm.Logf("Already marked as %s.", params.Status)
			} else {
				ctx.MustAlert(err)
			}
		} else {
			comm.Statf("%s", msg)
		}
	}

	details := o.Details()
	comm.ResultOrPrint(&mansion.GameResult{
		Type:        "game",
		Details:     details,
		Screenshots: o.Screenshots(),
		Status:      string(o.Status()),
		Message:     o.Message(),
	}, func() {
		render.Details(os.Stdout, details, o.Screenshots(), string(o.Status()), time.Now())
	})

	if params.Open {
		if details.Website == "" {
			comm.Warnf("%s has no website", details.Name)
		} else {
			comm.Opf("Opening %s", details.Website)
			err := open.Run(details.Website)
			if err != nil {
				return errors.Wrap(err, "opening website")
			}
		}
	}
	return nil
}
