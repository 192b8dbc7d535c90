package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rentifyapp/rentify-client/internal/api"
	"github.com/rentifyapp/rentify-client/internal/domain"
	errs "github.com/rentifyapp/rentify-client/internal/errors"
	"github.com/rentifyapp/rentify-client/internal/validation"
)

type createInput struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Interval string `json:"interval" validate:"required"`
	File     string `json:"file" validate:"required"`
}

func (a *App) runCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("title", "", "Listing title")
	body := fs.String("body", "", "Listing description")
	price := fs.Float64("price", 0, "Price per interval")
	interval := fs.String("interval", "daily", "Billing interval (e.g. daily)")
	file := fs.String("file", "", "Path to the cover image attachment")
	if err := fs.Parse(args); err != nil {
		return errs.Validation(err.Error())
	}

	user := a.currentUser()
	if err := validation.RequireUser(user); err != nil {
		return err
	}

	input := createInput{Title: *title, Body: *body, Interval: *interval, File: *file}
	if err := a.validator.Validate(input); err != nil {
		return err
	}

	// Price is forwarded unvalidated; the backend owns range rules.
	attachment, err := os.Open(*file)
	if err != nil {
		return errs.Validationf("cannot read attachment: %v", err)
	}
	defer attachment.Close()

	result, err := a.client.CreateListing(ctx, api.CreateListingParams{
		Title:    *title,
		Body:     *body,
		Price:    *price,
		Interval: *interval,
		Author:   user.ID,
		Filename: filepath.Base(*file),
		File:     attachment,
	})
	if err != nil {
		return err
	}

	a.logger.Info("listing created", "id", result.ID)
	fmt.Fprintf(a.out, "created listing %s\ncover: %s\n", result.ID, result.URL)
	return nil
}

func (a *App) runDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errs.Validation("usage: delete <id>")
	}
	listingID := args[0]

	user := a.currentUser()
	if err := validation.RequireUser(user); err != nil {
		return err
	}

	listing, err := a.client.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if !listing.IsOwner(user.ID) {
		return errs.Validation("only the listing owner can delete it")
	}

	if err := a.client.DeleteListing(ctx, listingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted listing %s\n", listingID)
	return nil
}

type applyInput struct {
	Message string `json:"message" validate:"required"`
}

func (a *App) runApply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(a.out)
	message := fs.String("message", "", "Why you want to rent this")
	if err := fs.Parse(args); err != nil {
		return errs.Validation(err.Error())
	}
	if fs.NArg() != 1 {
		return errs.Validation("usage: apply <id> -message <text>")
	}
	listingID := fs.Arg(0)

	if err := a.validator.Validate(applyInput{Message: *message}); err != nil {
		return err
	}

	user := a.currentUser()
	listing, err := a.client.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if err := validation.CheckCanApply(listing, user); err != nil {
		return err
	}

	err = a.client.ApplyForListing(ctx, listingID, api.ApplyParams{
		Author:      user.ID,
		Description: *message,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "applied for listing %s\n", listingID)
	return nil
}

func (a *App) runUnapply(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errs.Validation("usage: unapply <id>")
	}

	user := a.currentUser()
	if err := validation.RequireUser(user); err != nil {
		return err
	}

	if err := a.client.UnapplyForListing(ctx, args[0], user.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "withdrew application for listing %s\n", args[0])
	return nil
}

func (a *App) runRate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rate", flag.ContinueOnError)
	fs.SetOutput(a.out)
	rating := fs.Float64("rating", 0, "Rating value")
	comment := fs.String("comment", "", "Optional comment")
	if err := fs.Parse(args); err != nil {
		return errs.Validation(err.Error())
	}
	if fs.NArg() != 1 {
		return errs.Validation("usage: rate <id> -rating <n> [-comment <text>]")
	}
	listingID := fs.Arg(0)

	user := a.currentUser()
	listing, err := a.client.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if err := validation.CheckCanRate(listing, user); err != nil {
		return err
	}

	// The rating value itself is forwarded as-is, fractional or out of
	// range; the backend owns that rule.
	err = a.client.RateListing(ctx, listingID, api.RateParams{
		Author:  user.ID,
		Rating:  *rating,
		Comment: *comment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "rated listing %s: %.1f\n", listingID, *rating)
	return nil
}

func (a *App) runApprove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errs.Validation("usage: approve <id> <applicant>")
	}
	listingID, applicantID := args[0], args[1]

	user := a.currentUser()
	listing, err := a.client.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if err := validation.CheckCanApprove(listing, user); err != nil {
		return err
	}

	if err := a.client.ApproveApplication(ctx, listingID, user.ID, applicantID); err != nil {
		return err
	}

	// Show the approved state without a re-fetch. The local copy may lag
	// server truth until the next refresh.
	updated := domain.ApproveApplication(*listing, applicantID)
	fmt.Fprintf(a.out, "approved application by %s\n\n", applicantID)
	a.printListingDetail(&updated)
	return nil
}
