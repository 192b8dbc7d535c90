// Package search provides client-side full-text search over the listing
// collection currently held in memory.
//
// The index is rebuilt from scratch on every refresh; collections are small
// enough that an in-memory index is cheaper than keeping one on disk in sync
// with a backend the client does not own.
package search

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/rentifyapp/rentify-client/internal/domain"
)

// listingDocument is the shape indexed per listing.
type listingDocument struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Author   string  `json:"author"`
	Interval string  `json:"interval"`
	Price    float64 `json:"price"`
}

// Hit is one search match.
type Hit struct {
	ID    string
	Score float64
}

// Index wraps an in-memory Bleve index over listings.
//
// All public methods are safe for concurrent use; the mutex protects the
// index swap during rebuilds.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates an empty in-memory listing index.
func New(logger *slog.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{index: idx, logger: logger}, nil
}

// buildIndexMapping creates the Bleve mapping for listing documents.
// Title and body get English stemming; author and interval stay as plain
// searchable text.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = en.AnalyzerName
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)

	bodyField := bleve.NewTextFieldMapping()
	bodyField.Analyzer = en.AnalyzerName
	bodyField.Store = false
	docMapping.AddFieldMappingsAt("body", bodyField)

	authorField := bleve.NewTextFieldMapping()
	authorField.Store = true
	docMapping.AddFieldMappingsAt("author", authorField)

	intervalField := bleve.NewTextFieldMapping()
	docMapping.AddFieldMappingsAt("interval", intervalField)

	priceField := bleve.NewNumericFieldMapping()
	docMapping.AddFieldMappingsAt("price", priceField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexListings replaces the index contents with the given listings.
func (i *Index) IndexListings(listings []domain.Listing) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}

	batch := fresh.NewBatch()
	for idx := range listings {
		l := &listings[idx]
		doc := listingDocument{
			Title:    l.Title,
			Body:     l.Body,
			Author:   l.Author,
			Interval: l.Interval,
			Price:    l.Price,
		}
		if err := batch.Index(l.ID, doc); err != nil {
			return fmt.Errorf("index listing %s: %w", l.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}

	i.mu.Lock()
	old := i.index
	i.index = fresh
	i.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	i.logger.Debug("search index rebuilt", "listings", len(listings))
	return nil
}

// Search runs a match query over titles, bodies and authors and returns the
// matching listing IDs ordered by score.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}

	i.mu.RLock()
	idx := i.index
	i.mu.RUnlock()
	if idx == nil {
		return nil, fmt.Errorf("search %q: index closed", query)
	}

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)

	result, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score})
	}
	return hits, nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.index == nil {
		return nil
	}
	err := i.index.Close()
	i.index = nil
	return err
}
