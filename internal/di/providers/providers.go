// Package providers contains dependency injection providers for the rentify CLI.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/rentifyapp/rentify-client/internal/api"
	"github.com/rentifyapp/rentify-client/internal/cli"
	"github.com/rentifyapp/rentify-client/internal/config"
	"github.com/rentifyapp/rentify-client/internal/listings"
	"github.com/rentifyapp/rentify-client/internal/logger"
	"github.com/rentifyapp/rentify-client/internal/search"
	"github.com/rentifyapp/rentify-client/internal/session"
	"github.com/rentifyapp/rentify-client/internal/validation"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		Environment: cfg.App.Environment,
	})

	log.Debug("Starting rentify",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"api_url", cfg.API.BaseURL,
		"data_path", cfg.Data.Path,
	)

	return log, nil
}

// ProvideAPIClient provides the backend REST client.
func ProvideAPIClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return api.New(cfg.API.BaseURL, log.Logger), nil
}

// SessionStoreHandle wraps the session store with shutdown capability.
type SessionStoreHandle struct {
	*session.Store
}

// Shutdown implements do.Shutdownable.
func (h *SessionStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideSessionStore provides the persisted session store.
func ProvideSessionStore(i do.Injector) (*SessionStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := session.Open(cfg.Data.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Debug("Session store ready", "path", cfg.Data.Path)

	return &SessionStoreHandle{Store: store}, nil
}

// ProvideListingsService provides the listings collection with demo fallback.
func ProvideListingsService(i do.Injector) (*listings.Service, error) {
	client := do.MustInvoke[*api.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return listings.New(client, log.Logger), nil
}

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory listing search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	idx, err := search.New(log.Logger)
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{Index: idx}, nil
}

// ProvideValidator provides the input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideApp provides the command dispatcher.
func ProvideApp(i do.Injector) (*cli.App, error) {
	client := do.MustInvoke[*api.Client](i)
	store := do.MustInvoke[*SessionStoreHandle](i)
	collection := do.MustInvoke[*listings.Service](i)
	idx := do.MustInvoke[*SearchIndexHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return cli.New(cli.Options{
		Client:     client,
		Session:    store.Store,
		Collection: collection,
		Search:     idx.Index,
		Validator:  v,
		Logger:     log,
		Out:        os.Stdout,
	}), nil
}
