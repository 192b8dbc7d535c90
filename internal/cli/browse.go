package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/rentifyapp/rentify-client/internal/domain"
	errs "github.com/rentifyapp/rentify-client/internal/errors"
	"github.com/rentifyapp/rentify-client/internal/validation"
)

func (a *App) runHealth(ctx context.Context) error {
	if a.client.Health(ctx) {
		fmt.Fprintf(a.out, "backend %s is up\n", a.client.BaseURL())
		return nil
	}
	return errs.Network(fmt.Sprintf("backend %s is unreachable", a.client.BaseURL()))
}

func (a *App) runListings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("listings", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("search", "", "Filter listings by full-text search")
	mine := fs.Bool("mine", false, "Only show listings you own")
	if err := fs.Parse(args); err != nil {
		return errs.Validation(err.Error())
	}

	snap := a.collection.Refresh(ctx)
	if snap.UsingFallback {
		fmt.Fprintf(a.out, "! %s\n\n", snap.Err)
	}

	shown := snap.Listings
	if *query != "" {
		filtered, err := a.searchListings(snap.Listings, *query)
		if err != nil {
			return err
		}
		shown = filtered
	}
	if *mine {
		user := a.currentUser()
		if err := validation.RequireUser(user); err != nil {
			return err
		}
		var owned []domain.Listing
		for _, l := range shown {
			if l.IsOwner(user.ID) {
				owned = append(owned, l)
			}
		}
		shown = owned
	}

	if len(shown) == 0 {
		fmt.Fprintln(a.out, "no listings found")
		return nil
	}
	for i := range shown {
		a.printListingSummary(&shown[i])
	}
	return nil
}

// searchListings reindexes the current collection and filters it by query,
// preserving score order.
func (a *App) searchListings(all []domain.Listing, query string) ([]domain.Listing, error) {
	if err := a.search.IndexListings(all); err != nil {
		return nil, err
	}
	hits, err := a.search.Search(query, len(all))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Listing, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	matched := make([]domain.Listing, 0, len(hits))
	for _, hit := range hits {
		if l, ok := byID[hit.ID]; ok {
			matched = append(matched, *l)
		}
	}
	return matched, nil
}

func (a *App) runListing(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errs.Validation("usage: listing <id>")
	}

	listing, err := a.client.GetListing(ctx, args[0])
	if err != nil {
		return err
	}

	a.printListingDetail(listing)
	return nil
}

func (a *App) printListingSummary(l *domain.Listing) {
	status := "available"
	if !l.Available {
		status = "rented"
	}
	fmt.Fprintf(a.out, "%-12s %-40s %8.2f/%s  %s\n", l.ID, truncate(l.Title, 40), l.Price, l.Interval, status)
}

func (a *App) printListingDetail(l *domain.Listing) {
	fmt.Fprintf(a.out, "%s\n%s\n", l.Title, l.Body)
	fmt.Fprintf(a.out, "id: %s  owner: %s  price: %.2f/%s  available: %t\n", l.ID, l.Author, l.Price, l.Interval, l.Available)
	if cover := l.CoverURL(); cover != "" {
		fmt.Fprintf(a.out, "cover: %s\n", cover)
	}

	if len(l.Ratings) > 0 {
		fmt.Fprintf(a.out, "rating: %.1f (%d)\n", l.AverageRating(), len(l.Ratings))
		for _, r := range l.Ratings {
			line := fmt.Sprintf("  %.1f by %s", r.Rating, r.Author)
			if r.Comment != "" {
				line += " - " + r.Comment
			}
			fmt.Fprintln(a.out, line)
		}
	}

	if len(l.Applications) > 0 {
		fmt.Fprintln(a.out, "applications:")
		for _, app := range l.Applications {
			fmt.Fprintf(a.out, "  %s [%s] %s\n", app.Author, app.Status, app.Description)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
