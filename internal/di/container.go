// Package di provides dependency injection configuration for the rentify CLI.
package di

import (
	"github.com/samber/do/v2"

	"github.com/rentifyapp/rentify-client/internal/cli"
	"github.com/rentifyapp/rentify-client/internal/config"
	"github.com/rentifyapp/rentify-client/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Configuration is loaded by the caller so it can keep the remaining
// command-line arguments for dispatch.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)

	// Client core
	do.Provide(injector, providers.ProvideAPIClient)
	do.Provide(injector, providers.ProvideSessionStore)
	do.Provide(injector, providers.ProvideListingsService)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideValidator)

	// Command surface
	do.Provide(injector, providers.ProvideApp)

	return injector
}

// Bootstrap invokes the full service graph so initialization errors
// surface before any command runs.
func Bootstrap(injector *do.RootScope) (*cli.App, error) {
	if _, err := do.Invoke[*providers.SessionStoreHandle](injector); err != nil {
		return nil, err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return nil, err
	}
	return do.Invoke[*cli.App](injector)
}
