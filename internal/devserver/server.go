// Package devserver implements a development stand-in for the rental
// marketplace backend. It serves the same wire contract the production
// backend exposes, keeps everything in memory, and can hot-reload fixture
// data from a seed file.
package devserver

import (
	json "github.com/go-json-experiment/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server holds dependencies for the stub backend's handlers.
type Server struct {
	store  *Store
	router *chi.Mux
	logger *slog.Logger
}

// NewServer creates the stub backend with all routes configured.
func NewServer(store *Store, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		router: chi.NewRouter(),
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack. CORS is wide open; a
// browser client on another origin is the whole point of a dev backend.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
}

// setupRoutes configures all HTTP routes. Paths and parameter passing
// mirror the production backend: query parameters for IDs, lowercase JSON
// bodies for payloads.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Get("/listings", s.handleListListings)
	s.router.Get("/listing/{id}", s.handleGetListing)
	s.router.Post("/createListing", s.handleCreateListing)
	s.router.Delete("/deleteListing", s.handleDeleteListing)

	s.router.Post("/applyForListing", s.handleApply)
	s.router.Post("/unApplyForListing", s.handleUnapply)
	s.router.Post("/rateListing", s.handleRate)
	s.router.Post("/approveApplication", s.handleApprove)

	s.router.Post("/createUser", s.handleCreateUser)
	s.router.Get("/user/{id}", s.handleGetUser)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Listings())
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.store.Listing(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var input CreateListingInput
	if err := json.Unmarshal([]byte(r.FormValue("data")), &input); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid listing data")
		return
	}
	if input.Title == "" || input.Author == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "title and author are required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "file attachment is required")
		return
	}
	file.Close()

	listingID, fileURL, err := s.store.CreateListing(input, header.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"id": listingID, "url": fileURL})
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteListing(r.URL.Query().Get("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Author      string `json:"author"`
		Description string `json:"description"`
		ListingID   string `json:"listingId"`
	}
	if err := json.UnmarshalRead(r.Body, &payload); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid application payload")
		return
	}

	listingID := r.URL.Query().Get("id")
	if listingID == "" {
		listingID = payload.ListingID
	}
	if err := s.store.Apply(listingID, payload.Author, payload.Description); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUnapply(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := s.store.Unapply(q.Get("id"), q.Get("author")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Author  string  `json:"author"`
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := json.UnmarshalRead(r.Body, &payload); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid rating payload")
		return
	}

	rating := Rating{Author: payload.Author, Rating: payload.Rating, Comment: payload.Comment}
	if err := s.store.Rate(r.URL.Query().Get("id"), rating); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := s.store.Approve(q.Get("id"), q.Get("creator"), q.Get("applicationAuthor")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.UnmarshalRead(r.Body, &payload); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid user payload")
		return
	}

	userID, err := s.store.CreateUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"id": userID})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.User(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps store errors to HTTP statuses with the backend's flat
// {"error": ...} body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errNotFound), errors.Is(err, errNoUser), errors.Is(err, errNoApplicant):
		status = http.StatusNotFound
	case errors.Is(err, errNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, errDuplicate), errors.Is(err, errEmailTaken),
		errors.Is(err, errUnavailable), errors.Is(err, errSelfApplying):
		status = http.StatusConflict
	}
	s.writeErrorMessage(w, status, err.Error())
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
