package login

import (
	"context"

	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
	"github.com/pkg/errors"
)

var args = struct {
	username *string
	password *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("login", "Log in to GameScout and save the session locally.")
	args.username = cmd.Arg("username", "Your GameScout username").Required().String()
	args.password = cmd.Flag("password", "Password (prompted for if omitted)").String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.username, *args.password))
}

func Do(ctx *mansion.Context, username string, password string) error {
	store, err := ctx.Session()
	if err != nil {
		return err
	}

	if ctx.Token != "" {
		comm.Warnf("%s is set, it will be used instead of the session saved by this login", mansion.EnvToken)
	}

	if current := store.User(); current != nil && current.Username != username {
		comm.Logf("Currently logged in as %s, switching to %s", current.Username, username)
	}

	if password == "" {
		password, err = mansion.ReadPassword("Password: ")
		if err != nil {
			return errors.WithStack(err)
		}
	}

	user, err := store.Login(context.Background(), username, password)
	if err != nil {
		return err
	}

	comm.ResultOrPrint(&mansion.UserResult{Type: "user", User: user}, func() {
		comm.Statf("Logged in as %s", user.Username)
	})
	return nil
}
