//go:build wireinject
// +build wireinject

package di

import (
	"SeriesVault/pkg/config"
	"SeriesVault/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Logging and metrics
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideStores,
		ProvideSeriesProvider,
		ProvideEventPublisher,
		ProvideQueryCache,

		// Use cases
		ProvideMaterializer,
		ProvideIngestor,
		ProvideCacheReader,

		// HTTP layer
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
