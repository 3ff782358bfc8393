package logout

import (
	"context"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("logout", "Forget the saved GameScout session.")
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *mansion.Context) error {
	store, err := ctx.Session()
	if err != nil {
		return err
	}

	user := store.User()
	if user == nil {
		comm.Log("Not logged in. Nothing to do.")
		return nil
	}

	if ctx.Token != "" {
		comm.Warnf("%s is set, unset it to stop using that token", mansion.EnvToken)
	}

	if !comm.YesNo("Log out " + user.Username + "?") {
		comm.Log("Okay, staying logged in. Bye!")
		return nil
	}

	err = store.Logout(context.Background())
	if err != nil {
		return err
	}

	comm.Statf("Logged out.")
	comm.Result(map[string]string{"status": "success"})
	return nil
}
