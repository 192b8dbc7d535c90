// Package cli implements the rentify command surface over the client core.
//
// Commands replace the web client's pages: they read the session, validate
// input locally, call the REST client, and render inline results. API
// failures degrade to a printed message and a non-zero exit, never a panic.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rentifyapp/rentify-client/internal/api"
	"github.com/rentifyapp/rentify-client/internal/domain"
	errs "github.com/rentifyapp/rentify-client/internal/errors"
	"github.com/rentifyapp/rentify-client/internal/listings"
	"github.com/rentifyapp/rentify-client/internal/logger"
	"github.com/rentifyapp/rentify-client/internal/search"
	"github.com/rentifyapp/rentify-client/internal/session"
	"github.com/rentifyapp/rentify-client/internal/validation"
)

// App wires the client core into a command dispatcher.
type App struct {
	client     *api.Client
	session    *session.Store
	collection *listings.Service
	search     *search.Index
	validator  *validation.Validator
	logger     *logger.Logger
	out        io.Writer
}

// Options collects the App dependencies.
type Options struct {
	Client     *api.Client
	Session    *session.Store
	Collection *listings.Service
	Search     *search.Index
	Validator  *validation.Validator
	Logger     *logger.Logger
	Out        io.Writer
}

// New creates the command dispatcher.
func New(opts Options) *App {
	return &App{
		client:     opts.Client,
		session:    opts.Session,
		collection: opts.Collection,
		search:     opts.Search,
		validator:  opts.Validator,
		logger:     opts.Logger,
		out:        opts.Out,
	}
}

// Run dispatches a subcommand. args[0] is the command name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return errs.Validation("no command given")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "health":
		return a.runHealth(ctx)
	case "listings":
		return a.runListings(ctx, rest)
	case "listing":
		return a.runListing(ctx, rest)
	case "create":
		return a.runCreate(ctx, rest)
	case "delete":
		return a.runDelete(ctx, rest)
	case "apply":
		return a.runApply(ctx, rest)
	case "unapply":
		return a.runUnapply(ctx, rest)
	case "rate":
		return a.runRate(ctx, rest)
	case "approve":
		return a.runApprove(ctx, rest)
	case "signup":
		return a.runSignup(ctx, rest)
	case "login":
		return a.runLogin(ctx, rest)
	case "logout":
		return a.runLogout()
	case "whoami":
		return a.runWhoami()
	case "help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return errs.Validationf("unknown command %q", command)
	}
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, strings.TrimLeft(`
Usage: rentify [flags] <command> [args]

Commands:
  health                       Check whether the backend is reachable
  listings [-search q] [-mine] Browse the listing collection
  listing <id>                 Show one listing with ratings and applications
  create                       Post a new listing (requires login)
  delete <id>                  Delete a listing you own
  apply <id> -message <text>   Apply to rent a listing
  unapply <id>                 Withdraw your application
  rate <id> -rating <n>        Rate a listing you do not own
  approve <id> <applicant>     Approve an application on your listing
  signup                       Create an account and log in
  login <user-id>              Log in as an existing user
  logout                       Clear the stored session
  whoami                       Show the logged-in user

Global flags (before the command): -api-url, -data-path, -log-level, -log-format, -env, -env-file
`, "\n"))
}

// currentUser returns the logged-in user once the session is ready.
func (a *App) currentUser() *domain.User {
	if !a.session.Ready() {
		return nil
	}
	return a.session.Current()
}
