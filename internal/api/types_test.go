package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapListing_DefaultsAbsentCollections(t *testing.T) {
	raw := rawListing{
		ID:     "L1",
		Title:  "Drill",
		Author: "u1",
		// Ratings, Applications, StorageRelationLinks absent.
	}

	listing := mapListing(raw)

	require.NotNil(t, listing.Ratings)
	require.NotNil(t, listing.Applications)
	require.NotNil(t, listing.StorageRelationLinks)
	assert.Empty(t, listing.Ratings)
	assert.Empty(t, listing.Applications)
	assert.Empty(t, listing.StorageRelationLinks)
}

func TestMapListing_NormalizesFields(t *testing.T) {
	raw := rawListing{
		ID:                   "L1",
		Title:                "Drill",
		Body:                 "Cordless",
		StorageRelationLinks: []string{"https://cdn.example.com/drill.jpg"},
		Author:               "u1",
		Ratings:              []rawRating{{Author: "u2", Rating: 4.5, Comment: "Great"}},
		Applications:         []rawApplication{{Author: "u3", ListingID: "L1", Description: "Weekend job", Status: "pending"}},
		Price:                8,
		Interval:             "daily",
		Available:            true,
	}

	listing := mapListing(raw)

	assert.Equal(t, "L1", listing.ID)
	assert.Equal(t, "Drill", listing.Title)
	assert.Equal(t, "Cordless", listing.Body)
	assert.Equal(t, []string{"https://cdn.example.com/drill.jpg"}, listing.StorageRelationLinks)
	assert.Equal(t, "u1", listing.Author)
	assert.Equal(t, 8.0, listing.Price)
	assert.Equal(t, "daily", listing.Interval)
	assert.True(t, listing.Available)

	require.Len(t, listing.Ratings, 1)
	assert.Equal(t, "u2", listing.Ratings[0].Author)
	assert.Equal(t, 4.5, listing.Ratings[0].Rating)
	assert.Equal(t, "Great", listing.Ratings[0].Comment)

	require.Len(t, listing.Applications, 1)
	assert.Equal(t, "u3", listing.Applications[0].Author)
	assert.Equal(t, "L1", listing.Applications[0].ListingID)
	assert.Equal(t, "Weekend job", listing.Applications[0].Description)
	assert.Equal(t, "pending", listing.Applications[0].Status)
}

func TestMapUser(t *testing.T) {
	user := mapUser(rawUser{ID: "u1", Name: "Ada", Email: "ada@example.com"})

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestMapListings_PreservesOrder(t *testing.T) {
	listings := mapListings([]rawListing{{ID: "L1"}, {ID: "L2"}, {ID: "L3"}})

	require.Len(t, listings, 3)
	assert.Equal(t, "L1", listings[0].ID)
	assert.Equal(t, "L2", listings[1].ID)
	assert.Equal(t, "L3", listings[2].ID)
}
