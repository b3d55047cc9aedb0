package repository

import (
	"context"

	"SeriesVault/internal/domain/models"
)

// SeriesProvider fetches a daily series from the external data
// provider. Implementations make exactly one outbound call per
// invocation and return observations ordered by date ascending.
type SeriesProvider interface {
	FetchDaily(ctx context.Context, fn models.ProviderFunction, symbol string) ([]models.Observation, error)
}

// SeriesStore is the durable per-asset-class container of per-symbol
// tables. It is the only mutator of persisted series.
type SeriesStore interface {
	// Class returns the asset class this store persists.
	Class() models.AssetClass
	// EnsureTable creates the symbol's table if absent. Called even
	// for empty fetch results so the empty-table marker exists.
	EnsureTable(ctx context.Context, symbol string) error
	// Upsert writes observations idempotently: insert absent dates,
	// overwrite changed rows, skip identical ones. Returns the number
	// of rows inserted or overwritten. Writes to the same symbol
	// serialize; different symbols do not block each other.
	Upsert(ctx context.Context, symbol string, obs []models.Observation) (int, error)
	// Symbols lists every symbol with a table, empty tables included.
	Symbols(ctx context.Context) ([]string, error)
	// Read returns the symbol's full series ordered by date ascending.
	Read(ctx context.Context, symbol string) ([]models.Observation, error)
	Health(ctx context.Context) error
	Close() error
}

// Stores aggregates the four per-asset-class stores.
type Stores interface {
	For(class models.AssetClass) SeriesStore
	All() []SeriesStore
	Health(ctx context.Context) error
	Close() error
}

// EventPublisher emits one event per completed ingestion for
// downstream consumers. Optional; a nil publisher is skipped.
type EventPublisher interface {
	PublishIngest(ctx context.Context, res *models.IngestResult) error
	Close() error
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordIngest(class, status string)
	RecordRowsUpserted(class string, n int)
	RecordFault(kind string)
	RecordLatency(op string, seconds float64)
	RecordCacheBuild(symbols int)
}
