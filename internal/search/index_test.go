package search

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentifyapp/rentify-client/internal/domain"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	idx, err := New(logger)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{ID: "L1", Title: "Power washer available this weekend", Body: "Perfect for driveways and patios.", Author: "u1", Price: 18},
		{ID: "L2", Title: "Folding tables for parties", Body: "Great for birthdays and garage sales.", Author: "u2", Price: 12},
		{ID: "L3", Title: "Extension ladder - 24 feet", Body: "Heavy-duty aluminum ladder for painting.", Author: "u1", Price: 15},
	}
}

func TestIndex_SearchTitles(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.IndexListings(sampleListings()))

	hits, err := idx.Search("ladder", 10)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "L3", hits[0].ID)
}

func TestIndex_SearchBodies(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.IndexListings(sampleListings()))

	hits, err := idx.Search("driveways", 10)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "L1", hits[0].ID)
}

func TestIndex_StemmedMatch(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.IndexListings(sampleListings()))

	// English stemming: "party" matches "parties".
	hits, err := idx.Search("party", 10)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "L2", hits[0].ID)
}

func TestIndex_NoMatches(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.IndexListings(sampleListings()))

	hits, err := idx.Search("snowmobile", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndexListings_ReplacesContents(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.IndexListings(sampleListings()))

	require.NoError(t, idx.IndexListings([]domain.Listing{
		{ID: "L9", Title: "Cordless drill", Body: "Two batteries included."},
	}))

	hits, err := idx.Search("ladder", 10)
	require.NoError(t, err)
	assert.Empty(t, hits, "old documents should be gone after reindex")

	hits, err = idx.Search("drill", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "L9", hits[0].ID)
}

func TestIndex_EmptyCollection(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.IndexListings(nil))

	hits, err := idx.Search("anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
