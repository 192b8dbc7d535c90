package api

import (
	"context"
	"net/http"
	"net/url"
)

// ApplyParams describes an application to rent a listing.
type ApplyParams struct {
	Author      string
	Description string
}

// ApplyForListing submits a rental application on a listing.
func (c *Client) ApplyForListing(ctx context.Context, listingID string, params ApplyParams) error {
	query := url.Values{"id": {listingID}}
	payload := map[string]string{
		"author":      params.Author,
		"description": params.Description,
		"listingId":   listingID,
	}
	return c.doJSON(ctx, http.MethodPost, "/applyForListing", query, payload, "unable to apply for listing", nil)
}

// UnapplyForListing withdraws a previously submitted application.
func (c *Client) UnapplyForListing(ctx context.Context, listingID, authorID string) error {
	query := url.Values{
		"id":     {listingID},
		"author": {authorID},
	}
	return c.doJSON(ctx, http.MethodPost, "/unApplyForListing", query, nil, "unable to withdraw application", nil)
}

// RateParams describes a rating left on a listing. Comment may be empty.
type RateParams struct {
	Author  string
	Rating  float64
	Comment string
}

// RateListing submits a rating on a listing. The rating value is forwarded
// as-is; range enforcement belongs to the backend.
func (c *Client) RateListing(ctx context.Context, listingID string, params RateParams) error {
	query := url.Values{"id": {listingID}}
	payload := map[string]any{
		"author":  params.Author,
		"rating":  params.Rating,
		"comment": params.Comment,
	}
	return c.doJSON(ctx, http.MethodPost, "/rateListing", query, payload, "unable to rate listing", nil)
}

// ApproveApplication approves a pending application. creatorID must be the
// listing owner's ID; the backend flips the listing to unavailable.
func (c *Client) ApproveApplication(ctx context.Context, listingID, creatorID, applicantID string) error {
	query := url.Values{
		"id":                {listingID},
		"creator":           {creatorID},
		"applicationAuthor": {applicantID},
	}
	return c.doJSON(ctx, http.MethodPost, "/approveApplication", query, nil, "unable to approve application", nil)
}
