package api

import "github.com/rentifyapp/rentify-client/internal/domain"

// Wire types as the backend serializes them. The backend marshals its Go
// structs without json tags, so fields arrive with capitalized names; the
// mapping functions below normalize them into domain records so the rest of
// the client never sees backend naming.
//
// Mapping is total: a missing optional collection becomes an empty slice,
// never an error.

type rawUser struct {
	ID    string `json:"ID"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

type rawRating struct {
	Author  string  `json:"Author"`
	Rating  float64 `json:"Rating"`
	Comment string  `json:"Comment"`
}

type rawApplication struct {
	Author      string `json:"Author"`
	ListingID   string `json:"ListingID"`
	Description string `json:"Description"`
	Status      string `json:"Status"`
}

type rawListing struct {
	ID                   string           `json:"ID"`
	Title                string           `json:"Title"`
	Body                 string           `json:"Body"`
	StorageRelationLinks []string         `json:"StorageRelationLinks"`
	Author               string           `json:"Author"`
	Ratings              []rawRating      `json:"Ratings"`
	Applications         []rawApplication `json:"Applications"`
	Price                float64          `json:"Price"`
	Interval             string           `json:"Interval"`
	Available            bool             `json:"Available"`
}

func mapUser(u rawUser) domain.User {
	return domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func mapRating(r rawRating) domain.Rating {
	return domain.Rating{
		Author:  r.Author,
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}

func mapApplication(a rawApplication) domain.Application {
	return domain.Application{
		Author:      a.Author,
		ListingID:   a.ListingID,
		Description: a.Description,
		Status:      a.Status,
	}
}

func mapListing(l rawListing) domain.Listing {
	links := l.StorageRelationLinks
	if links == nil {
		links = []string{}
	}

	ratings := make([]domain.Rating, 0, len(l.Ratings))
	for _, r := range l.Ratings {
		ratings = append(ratings, mapRating(r))
	}

	applications := make([]domain.Application, 0, len(l.Applications))
	for _, a := range l.Applications {
		applications = append(applications, mapApplication(a))
	}

	return domain.Listing{
		ID:                   l.ID,
		Title:                l.Title,
		Body:                 l.Body,
		StorageRelationLinks: links,
		Author:               l.Author,
		Ratings:              ratings,
		Applications:         applications,
		Price:                l.Price,
		Interval:             l.Interval,
		Available:            l.Available,
	}
}

func mapListings(raw []rawListing) []domain.Listing {
	listings := make([]domain.Listing, 0, len(raw))
	for _, l := range raw {
		listings = append(listings, mapListing(l))
	}
	return listings
}
