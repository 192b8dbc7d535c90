package api

import (
	"bytes"
	"context"
	json "github.com/go-json-experiment/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rentifyapp/rentify-client/internal/domain"
	errs "github.com/rentifyapp/rentify-client/internal/errors"
)

// ListListings fetches every listing on the marketplace.
func (c *Client) ListListings(ctx context.Context) ([]domain.Listing, error) {
	const fallback = "unable to load listings"

	var raw []rawListing
	if err := c.doJSON(ctx, http.MethodGet, "/listings", nil, nil, fallback, &raw); err != nil {
		return nil, err
	}

	c.logger.Debug("fetched listings", "count", len(raw))
	return mapListings(raw), nil
}

// GetListing fetches a single listing by ID.
func (c *Client) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	const fallback = "unable to load listing"

	var raw rawListing
	if err := c.doJSON(ctx, http.MethodGet, "/listing/"+url.PathEscape(listingID), nil, nil, fallback, &raw); err != nil {
		return nil, err
	}

	listing := mapListing(raw)
	return &listing, nil
}

// CreateListingParams describes a new listing. File is the required binary
// attachment; its upload URL becomes the listing's cover image.
type CreateListingParams struct {
	Title    string
	Body     string
	Price    float64
	Interval string
	Author   string
	Filename string
	File     io.Reader
}

// CreateListingResult is the backend's answer to a successful creation.
type CreateListingResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateListing posts a new listing as a multipart form: a "data" field with
// the listing JSON and a "file" field with the attachment.
func (c *Client) CreateListing(ctx context.Context, params CreateListingParams) (*CreateListingResult, error) {
	const fallback = "unable to create listing"

	payload := map[string]any{
		"title":                params.Title,
		"body":                 params.Body,
		"price":                params.Price,
		"interval":             params.Interval,
		"author":               params.Author,
		"available":            true,
		"storageRelationLinks": []string{},
		"ratings":              []domain.Rating{},
		"applications":         []domain.Application{},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Network(fallback).WithCause(err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("data", string(data)); err != nil {
		return nil, errs.Network(fallback).WithCause(err)
	}
	part, err := form.CreateFormFile("file", params.Filename)
	if err != nil {
		return nil, errs.Network(fallback).WithCause(err)
	}
	if _, err := io.Copy(part, params.File); err != nil {
		return nil, errs.Network(fmt.Sprintf("%s: read attachment", fallback)).WithCause(err)
	}
	if err := form.Close(); err != nil {
		return nil, errs.Network(fallback).WithCause(err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/createListing", nil, &body)
	if err != nil {
		return nil, errs.Network(fallback).WithCause(err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result CreateListingResult
	if err := c.do(req, fallback, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteListing removes a listing by ID.
func (c *Client) DeleteListing(ctx context.Context, listingID string) error {
	query := url.Values{"id": {listingID}}
	return c.doJSON(ctx, http.MethodDelete, "/deleteListing", query, nil, "unable to delete listing", nil)
}
