package signup

import (
	"context"

	"github.com/gamescout/scout/cmd/prefs"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/mansion"
	"github.com/gamescout/scout/session"
	"github.com/pkg/errors"
)

var args = struct {
	username *string
	email    *string
	genres   *[]string
	platform *string
	password *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("signup", "Create a GameScout account and log in to it.")
	args.username = cmd.Flag("username", "Username (prompted for if omitted)").String()
	args.email = cmd.Flag("email", "Email address (prompted for if omitted)").String()
	args.genres = cmd.Flag("genre", "Favorite genre (repeatable)").Strings()
	args.platform = cmd.Flag("platform", "Favorite platform").String()
	args.password = cmd.Flag("password", "Password (prompted for twice if omitted)").Hidden().String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	form := session.SignupForm{
		Username: *args.username,
		Email:    *args.email,
		Password: *args.password,
	}
	form.ConfirmPassword = form.Password
	form.FavoriteGenres = prefs.ResolveGenres(*args.genres)
	if *args.platform != "" {
		form.FavoritePlatforms = []string{prefs.ResolvePlatform(*args.platform)}
	}
	ctx.Must(Do(ctx, form))
}

func Do(ctx *mansion.Context, form session.SignupForm) error {
	store, err := ctx.Session()
	if err != nil {
		return err
	}

	prompts := []struct {
		value  *string
		prompt func(string) (string, error)
		label  string
	}{
		{&form.Username, mansion.Prompt, "Username: "},
		{&form.Email, mansion.Prompt, "Email: "},
		{&form.Password, mansion.ReadPassword, "Password: "},
		{&form.ConfirmPassword, mansion.ReadPassword, "Confirm password: "},
	}
	for _, p := range prompts {
		if *p.value != "" {
			continue
		}
		*p.value, err = p.prompt(p.label)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	user, err := store.Signup(context.Background(), form)
	if err != nil {
		return err
	}

	comm.ResultOrPrint(&mansion.UserResult{Type: "user", User: user}, func() {
		comm.Statf("Welcome, %s! You're logged in.", user.Username)
	})
	return nil
}
