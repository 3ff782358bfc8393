package mansion

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gamescout/scout/collection"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/database"
	"github.com/gamescout/scout/gamescout"
	"github.com/gamescout/scout/session"
	"github.com/itchio/httpkit/timeout"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type DoCommand func(ctx *Context)

type Context struct {
	App      *kingpin.Application
	Commands map[string]DoCommand

	// Address is the URL of the GameScout server we're talking to
	Address string

	// Token, if set, is used instead of the stored session
	Token string

	// Path to the local sqlite database
	DBPath string

	// Path to config.toml
	ConfigPath string

	// How many games to ask for per search page
	PageSize int64

	// String to include in our user-agent
	UserAgentAddition string

	// Version is just the version number, as a string
	Version string

	// The git commit hash
	Commit string

	// Quiet silences all output
	Quiet bool

	// Verbose enables chatty output
	Verbose bool

	// JSON enables JSON-lines output
	JSON bool

	// AssumeYes answers yes to every confirmation
	AssumeYes bool

	HTTPClient    *http.Client
	HTTPTransport *http.Transport

	clientOnce sync.Once
	client     *gamescout.Client

	dbOnce sync.Once
	db     *database.DB
	dbErr  error

	sessionOnce sync.Once
	session     *session.Store
	sessionErr  error
}

func NewContext(app *kingpin.Application) *Context {
	client := timeout.NewDefaultClient()
	originalTransport := client.Transport.(*http.Transport)

	ctx := &Context{
		App:           app,
		Commands:      make(map[string]DoCommand),
		HTTPClient:    client,
		HTTPTransport: originalTransport,
	}

	client.Transport = &UserAgentSetter{
		OriginalTransport: originalTransport,
		Context:           ctx,
	}

	return ctx
}

func (ctx *Context) Register(clause *kingpin.CmdClause, do DoCommand) {
	ctx.Commands[clause.FullCommand()] = do
}

func (ctx *Context) Must(err error) {
	if err != nil {
		if ctx.Verbose || ctx.JSON {
			comm.Dief("%+v", err)
		} else {
			comm.Dief("%s", err)
		}
	}
}

// MustAlert is Must for failed collection changes: the user gets an
// alert they can't miss, even in quiet mode.
func (ctx *Context) MustAlert(err error) {
	if err != nil {
		comm.Alert(err.Error())
		if ctx.Verbose {
			comm.Debugf("%+v", err)
		}
		os.Exit(1)
	}
}

func (ctx *Context) UserAgent() string {
	version := ctx.Version
	if version == "head" && ctx.Commit != "" {
		version = ctx.Commit
	}

	res := fmt.Sprintf("scout/%s", version)
	if ctx.UserAgentAddition != "" {
		res = fmt.Sprintf("%s %s", res, ctx.UserAgentAddition)
	}
	return res
}

// NewClient returns an API client for the configured server, going
// through our HTTP client.
func (ctx *Context) NewClient(key string) *gamescout.Client {
	client := gamescout.ClientWithKey(key)
	client.HTTPClient = ctx.HTTPClient
	client.SetServer(ctx.Address)
	client.UserAgent = ctx.UserAgent()
	return client
}

// Client is the API client shared by every controller of this
// process. The session store installs its token on it.
func (ctx *Context) Client() *gamescout.Client {
	ctx.clientOnce.Do(func() {
		ctx.client = ctx.NewClient("")
	})
	return ctx.client
}

func (ctx *Context) Consumer() *state.Consumer {
	return comm.NewStateConsumer()
}

// DB opens the local database on first use.
func (ctx *Context) DB() (*database.DB, error) {
	ctx.dbOnce.Do(func() {
		ctx.db, ctx.dbErr = database.Open(ctx.Consumer(), ctx.DBPath)
	})
	return ctx.db, ctx.dbErr
}

// Session returns the session store, restored from the environment
// token if there is one, from the local database otherwise.
func (ctx *Context) Session() (*session.Store, error) {
	ctx.sessionOnce.Do(func() {
		db, err := ctx.DB()
		if err != nil {
			ctx.sessionErr = err
			return
		}

		store := session.NewStore(ctx.Client(), session.NewDBStorage(db), ctx.Consumer())
		if ctx.Token != "" {
			_, err = store.Adopt(context.Background(), ctx.Token)
			if err != nil {
				ctx.sessionErr = errors.WithMessage(err, "using "+EnvToken)
				return
			}
		} else {
			err = store.Restore(context.Background())
			if err != nil {
				ctx.sessionErr = err
				return
			}
		}
		ctx.session = store
	})
	return ctx.session, ctx.sessionErr
}

// MustLogin returns the session store of a logged-in user, or dies.
func (ctx *Context) MustLogin() *session.Store {
	store, err := ctx.Session()
	ctx.Must(err)
	if !store.LoggedIn() {
		comm.Dief("Not logged in. Run `scout login <username>` first.")
	}
	return store
}

// Collection returns a collection controller using the shared client.
func (ctx *Context) Collection() *collection.Collection {
	return collection.New(ctx.Client(), ctx.Consumer())
}

// Close releases the local database, if it was opened.
func (ctx *Context) Close() {
	if ctx.db != nil {
		err := ctx.db.Close()
		if err != nil {
			comm.Warnf("Closing database: %s", err.Error())
		}
	}
}

//

type UserAgentSetter struct {
	OriginalTransport http.RoundTripper
	Context           *Context
}

var _ http.RoundTripper = (*UserAgentSetter)(nil)

func (uas *UserAgentSetter) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", uas.Context.UserAgent())
	return uas.OriginalTransport.RoundTrip(req)
}
