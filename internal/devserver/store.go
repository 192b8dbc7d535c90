package devserver

import (
	json "github.com/go-json-experiment/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/rentifyapp/rentify-client/internal/id"
)

// Wire records are marshaled with their Go field names, matching what the
// production backend puts on the wire.

// User is a stored account. PasswordHash never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string `json:"-"`
}

// Rating is a review left on a listing.
type Rating struct {
	Author  string
	Rating  float64
	Comment string
}

// Application is a rental request on a listing.
type Application struct {
	Author      string
	ListingID   string
	Description string
	Status      string
}

// Listing is a rentable item.
type Listing struct {
	ID                   string
	Title                string
	Body                 string
	StorageRelationLinks []string
	Author               string
	Ratings              []Rating
	Applications         []Application
	Price                float64
	Interval             string
	Available            bool
}

// Application status values.
const (
	statusPending  = "pending"
	statusApproved = "approved"
)

// Store state errors surfaced to handlers.
var (
	errNotFound     = errors.New("not found")
	errNotOwner     = errors.New("not the listing owner")
	errDuplicate    = errors.New("already applied")
	errNoUser       = errors.New("unknown user")
	errUnavailable  = errors.New("listing unavailable")
	errNoApplicant  = errors.New("no such application")
	errEmailTaken   = errors.New("email already registered")
	errSelfApplying = errors.New("owners cannot apply to their own listing")
)

// Store holds the development backend's state in memory. A seed file can
// replace the whole state at any time, so every accessor takes the lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*User
	byEmail  map[string]string
	listings map[string]*Listing
	order    []string

	logger *slog.Logger
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		users:    make(map[string]*User),
		byEmail:  make(map[string]string),
		listings: make(map[string]*Listing),
		logger:   logger,
	}
}

// CreateUser registers an account and returns its generated ID.
func (s *Store) CreateUser(name, email, password string) (string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return "", errEmailTaken
	}

	userID, err := id.Generate("user")
	if err != nil {
		return "", err
	}

	s.users[userID] = &User{
		ID:           userID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	s.byEmail[email] = userID

	return userID, nil
}

// User returns an account by ID with the ID field cleared, matching the
// production backend's lookup response.
func (s *Store) User(userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, errNotFound
	}

	return &User{Name: u.Name, Email: u.Email}, nil
}

// Listings returns all listings in insertion order.
func (s *Store) Listings() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Listing, 0, len(s.order))
	for _, listingID := range s.order {
		out = append(out, copyListing(s.listings[listingID]))
	}
	return out
}

// Listing returns a single listing by ID.
func (s *Store) Listing(listingID string) (Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[listingID]
	if !ok {
		return Listing{}, errNotFound
	}
	return copyListing(l), nil
}

// CreateListingInput is the decoded "data" field of a creation request.
// The client sends lowercase keys.
type CreateListingInput struct {
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Price     float64 `json:"price"`
	Interval  string  `json:"interval"`
	Author    string  `json:"author"`
	Available bool    `json:"available"`
}

// CreateListing stores a listing and returns its ID and the URL of the
// uploaded attachment.
func (s *Store) CreateListing(input CreateListingInput, filename string) (listingID, fileURL string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listingID, err = id.Generate("listing")
	if err != nil {
		return "", "", err
	}
	fileURL = fmt.Sprintf("/files/%s/%s", listingID, filename)

	s.listings[listingID] = &Listing{
		ID:                   listingID,
		Title:                input.Title,
		Body:                 input.Body,
		StorageRelationLinks: []string{fileURL},
		Author:               input.Author,
		Ratings:              []Rating{},
		Applications:         []Application{},
		Price:                input.Price,
		Interval:             input.Interval,
		Available:            input.Available,
	}
	s.order = append(s.order, listingID)

	return listingID, fileURL, nil
}

// DeleteListing removes a listing.
func (s *Store) DeleteListing(listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listingID]; !ok {
		return errNotFound
	}
	delete(s.listings, listingID)
	for i, lid := range s.order {
		if lid == listingID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Apply records a pending application on a listing.
func (s *Store) Apply(listingID, author, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return errNotFound
	}
	if l.Author == author {
		return errSelfApplying
	}
	if !l.Available {
		return errUnavailable
	}
	for _, a := range l.Applications {
		if a.Author == author {
			return errDuplicate
		}
	}

	l.Applications = append(l.Applications, Application{
		Author:      author,
		ListingID:   listingID,
		Description: description,
		Status:      statusPending,
	})
	return nil
}

// Unapply withdraws an application by its author.
func (s *Store) Unapply(listingID, author string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return errNotFound
	}
	for i, a := range l.Applications {
		if a.Author == author {
			l.Applications = append(l.Applications[:i], l.Applications[i+1:]...)
			return nil
		}
	}
	return errNoApplicant
}

// Rate appends a rating to a listing.
func (s *Store) Rate(listingID string, rating Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return errNotFound
	}
	l.Ratings = append(l.Ratings, rating)
	return nil
}

// Approve marks an application approved and takes the listing off the
// market. Only the listing owner may approve.
func (s *Store) Approve(listingID, creator, applicant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return errNotFound
	}
	if l.Author != creator {
		return errNotOwner
	}
	for i := range l.Applications {
		if l.Applications[i].Author == applicant {
			l.Applications[i].Status = statusApproved
			l.Available = false
			return nil
		}
	}
	return errNoApplicant
}

func copyListing(l *Listing) Listing {
	out := *l
	out.StorageRelationLinks = append([]string(nil), l.StorageRelationLinks...)
	out.Ratings = append([]Rating(nil), l.Ratings...)
	out.Applications = append([]Application(nil), l.Applications...)
	return out
}

// Seed is the development fixture file format. Passwords are plain text in
// the fixture and hashed at load.
type Seed struct {
	Users []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"users"`
	Listings []struct {
		ID        string  `json:"id"`
		Title     string  `json:"title"`
		Body      string  `json:"body"`
		Price     float64 `json:"price"`
		Interval  string  `json:"interval"`
		Author    string  `json:"author"`
		Available bool    `json:"available"`
		Links     []string `json:"storageRelationLinks"`
	} `json:"listings"`
}

// LoadSeed replaces the store's state with the contents of a fixture file.
func (s *Store) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	users := make(map[string]*User, len(seed.Users))
	byEmail := make(map[string]string, len(seed.Users))
	for _, u := range seed.Users {
		userID := u.ID
		if userID == "" {
			if userID, err = id.Generate("user"); err != nil {
				return err
			}
		}
		hash, err := hashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		users[userID] = &User{ID: userID, Name: u.Name, Email: u.Email, PasswordHash: hash}
		byEmail[u.Email] = userID
	}

	listings := make(map[string]*Listing, len(seed.Listings))
	order := make([]string, 0, len(seed.Listings))
	for _, l := range seed.Listings {
		listingID := l.ID
		if listingID == "" {
			if listingID, err = id.Generate("listing"); err != nil {
				return err
			}
		}
		links := l.Links
		if links == nil {
			links = []string{}
		}
		listings[listingID] = &Listing{
			ID:                   listingID,
			Title:                l.Title,
			Body:                 l.Body,
			StorageRelationLinks: links,
			Author:               l.Author,
			Ratings:              []Rating{},
			Applications:         []Application{},
			Price:                l.Price,
			Interval:             l.Interval,
			Available:            l.Available,
		}
		order = append(order, listingID)
	}

	s.mu.Lock()
	s.users = users
	s.byEmail = byEmail
	s.listings = listings
	s.order = order
	s.mu.Unlock()

	s.logger.Info("seed loaded", "path", path, "users", len(users), "listings", len(order))
	return nil
}
