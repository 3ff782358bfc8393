package recommend

import (
	"context"
	"os"
	"time"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
	"github.com/gamescout/scout/recommend"
	"github.com/gamescout/scout/render"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("recommend", "Show games picked for you, from your preferences and your collection.")
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *mansion.Context) error {
	ctx.MustLogin()

	r := recommend.New(ctx.Client(), ctx.Consumer())
	view, err := r.Refresh(context.Background())
	if err != nil {
		return err
	}

	comm.ResultOrPrint(&mansion.RecommendationsResult{
		Type:            "recommendations",
		PreferenceBased: view.PreferenceBased,
		GenreBased:      view.GenreBased,
	}, func() {
		if view.Empty() {
			comm.Logf("%s. Set favorite genres with `scout prefs`, or save some games.", recommend.EmptyMessage)
			return
		}

		now := time.Now()
		if len(view.PreferenceBased) > 0 {
			comm.Opf("Based on your preferences")
			render.Games(os.Stdout, view.PreferenceBased, now)
		}
		if len(view.GenreBased) > 0 {
			comm.Opf("Based on your collection")
			render.Games(os.Stdout, view.GenreBased, now)
		}
	})
	return nil
}
