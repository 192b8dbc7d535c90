package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListing_CoverURL(t *testing.T) {
	l := Listing{StorageRelationLinks: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}}
	assert.Equal(t, "https://cdn.example.com/a.jpg", l.CoverURL())

	empty := Listing{StorageRelationLinks: []string{}}
	assert.Equal(t, "", empty.CoverURL())
}

func TestListing_IsOwner(t *testing.T) {
	l := Listing{Author: "u1"}
	assert.True(t, l.IsOwner("u1"))
	assert.False(t, l.IsOwner("u2"))
	// An anonymous viewer never owns anything, even if the author field is empty.
	anon := Listing{Author: ""}
	assert.False(t, anon.IsOwner(""))
}

func TestListing_HasApplied(t *testing.T) {
	l := Listing{Applications: []Application{
		{Author: "u2", Status: ApplicationPending},
		{Author: "u3", Status: ApplicationApproved},
	}}
	assert.True(t, l.HasApplied("u2"))
	assert.True(t, l.HasApplied("u3"))
	assert.False(t, l.HasApplied("u4"))
}

func TestListing_AverageRating(t *testing.T) {
	l := Listing{Ratings: []Rating{
		{Author: "u2", Rating: 4},
		{Author: "u3", Rating: 5},
	}}
	assert.InDelta(t, 4.5, l.AverageRating(), 0.0001)

	unrated := Listing{}
	assert.Equal(t, 0.0, unrated.AverageRating())
}

func TestApproveApplication(t *testing.T) {
	original := Listing{
		ID:        "L1",
		Available: true,
		Applications: []Application{
			{Author: "u2", Status: ApplicationPending},
			{Author: "u3", Status: ApplicationPending},
		},
	}

	approved := ApproveApplication(original, "u2")

	assert.False(t, approved.Available)
	assert.Equal(t, ApplicationApproved, approved.Applications[0].Status)
	assert.Equal(t, ApplicationPending, approved.Applications[1].Status)

	// The input listing must be untouched.
	assert.True(t, original.Available)
	assert.Equal(t, ApplicationPending, original.Applications[0].Status)
}

func TestApproveApplication_UnknownApplicant(t *testing.T) {
	original := Listing{
		Available:    true,
		Applications: []Application{{Author: "u2", Status: ApplicationPending}},
	}

	approved := ApproveApplication(original, "nobody")

	// Availability still flips; the backend call already succeeded.
	assert.False(t, approved.Available)
	assert.Equal(t, ApplicationPending, approved.Applications[0].Status)
}
