// Package session persists the logged-in user across client restarts.
//
// The store holds at most one user. It is written through to a local Badger
// database on every change, so a restart restores the previous session.
package session

import (
	json "github.com/go-json-experiment/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/rentifyapp/rentify-client/internal/domain"
)

// userKey is the single key holding the serialized session user.
const userKey = "session:user"

// Subscriber is notified after every session change. The argument is nil
// after a logout.
type Subscriber func(*domain.User)

// Store is the process-wide session slot.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	mu    sync.RWMutex
	user  *domain.User
	ready bool
	subs  []Subscriber
}

// Open opens the session store at path and restores any persisted session.
// An empty path opens an in-memory store: sessions then live only as long as
// the process, which is the behavior wanted where no local storage exists.
//
// A corrupt persisted record is discarded and the session starts empty;
// corruption is never a startup failure.
func Open(path string, logger *slog.Logger) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
		opts.SyncWrites = true
	}
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}
	s.restore()

	return s, nil
}

// restore performs the initial read. Ready becomes true once it completes,
// whatever the outcome, so consumers can tell "not yet known" apart from
// "known to be logged out".
func (s *Store) restore() {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append(raw, val...)
			return nil
		})
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return
	case err != nil:
		s.logger.Warn("failed to read persisted session", "error", err)
		return
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn("discarding corrupt persisted session", "error", err)
		if derr := s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete([]byte(userKey))
		}); derr != nil {
			s.logger.Warn("failed to remove corrupt session record", "error", derr)
		}
		return
	}

	s.user = &user
	s.logger.Debug("restored session", "user", user.ID)
}

// Ready reports whether the initial storage read has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Current returns a copy of the logged-in user, or nil when logged out.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser logs a user in, writing through to persisted storage.
func (s *Store) SetUser(user *domain.User) error {
	if user == nil {
		return s.Logout()
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKey), data)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	u := *user
	s.user = &u
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.logger.Debug("session updated", "user", user.ID)
	notify(subs, &u)
	return nil
}

// Logout clears the session and removes the persisted record.
func (s *Store) Logout() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(userKey))
	})
	if err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.logger.Debug("session cleared")
	notify(subs, nil)
	return nil
}

// Subscribe registers fn to run after every session change.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// snapshotSubs must be called with mu held.
func (s *Store) snapshotSubs() []Subscriber {
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	return subs
}

func notify(subs []Subscriber, user *domain.User) {
	for _, fn := range subs {
		fn(user)
	}
}
