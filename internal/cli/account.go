package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/rentifyapp/rentify-client/internal/api"
	errs "github.com/rentifyapp/rentify-client/internal/errors"
)

type signupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (a *App) runSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return errs.Validation(err.Error())
	}

	input := signupInput{Name: *name, Email: *email, Password: *password}
	if err := a.validator.Validate(input); err != nil {
		return err
	}

	user, err := a.client.CreateUser(ctx, api.CreateUserParams{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	if err := a.session.SetUser(user); err != nil {
		return err
	}

	a.logger.Info("account created", "user", user.ID)
	fmt.Fprintf(a.out, "welcome, %s (id %s)\n", user.Name, user.ID)
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errs.Validation("usage: login <user-id>")
	}

	user, err := a.client.GetUser(ctx, args[0])
	if err != nil {
		return err
	}
	// The backend strips the ID from user lookups; keep the one we asked for.
	if user.ID == "" {
		user.ID = args[0]
	}

	if err := a.session.SetUser(user); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s (id %s)\n", user.Name, user.ID)
	return nil
}

func (a *App) runLogout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) runWhoami() error {
	if !a.session.Ready() {
		fmt.Fprintln(a.out, "session not loaded yet")
		return nil
	}
	user := a.session.Current()
	if user == nil {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
	return nil
}
