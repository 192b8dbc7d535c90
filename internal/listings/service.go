// Package listings maintains the client-side copy of the listing collection.
//
// A Refresh either loads live data from the backend or degrades to the fixed
// demo dataset, and the resulting state is stable until the next Refresh.
// There is no polling and no automatic retry; refresh is caller-triggered.
package listings

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/rentifyapp/rentify-client/internal/domain"
)

// Degraded-state messages, chosen by failure flavor.
const (
	msgGeneric = "Using demo data - API unavailable"
	msgCORS    = "CORS error: Backend needs CORS configuration. Using demo data."
	msgNetwork = "Network error: Cannot connect to API. Using demo data."
)

// Lister is the slice of the API client this service needs.
type Lister interface {
	ListListings(ctx context.Context) ([]domain.Listing, error)
}

// Snapshot is the collection state handed to views.
type Snapshot struct {
	Listings      []domain.Listing
	Loading       bool
	Err           string
	UsingFallback bool
}

// Subscriber is notified with every state change, including the transition
// into Loading.
type Subscriber func(Snapshot)

// Service orchestrates fetching the listing collection.
type Service struct {
	client Lister
	logger *slog.Logger

	mu   sync.RWMutex
	snap Snapshot
	subs []Subscriber
}

// New creates a collection service. The initial state is empty and idle.
func New(client Lister, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		snap:   Snapshot{Listings: []domain.Listing{}},
	}
}

// Snapshot returns the current collection state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers fn to run on every state change.
func (s *Service) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Refresh re-fetches the collection and returns the resulting state.
// On failure of any kind the demo dataset is shown instead, with an error
// message classified by failure flavor.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	s.update(Snapshot{Listings: s.Snapshot().Listings, Loading: true})

	data, err := s.client.ListListings(ctx)
	if err != nil {
		s.logger.Warn("listing fetch failed, using fallback data", "error", err)
		return s.update(Snapshot{
			Listings:      Fallback(),
			UsingFallback: true,
			Err:           classifyFailure(err),
		})
	}

	s.logger.Debug("listing collection refreshed", "count", len(data))
	return s.update(Snapshot{Listings: data})
}

func (s *Service) update(snap Snapshot) Snapshot {
	s.mu.Lock()
	s.snap = snap
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return snap
}

// classifyFailure picks the degraded-state message from the failure text.
func classifyFailure(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "CORS"):
		return msgCORS
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "dial tcp"),
		strings.Contains(msg, "fetch"):
		return msgNetwork
	default:
		return msgGeneric
	}
}
