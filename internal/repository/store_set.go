package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	applogger "SeriesVault/pkg/logger"
	pkgsqlite "SeriesVault/pkg/sqlite"
)

// StoreSet holds the four per-asset-class stores. Handles are explicit;
// nothing in the pipeline reaches for an ambient connection.
type StoreSet struct {
	stores map[models.AssetClass]drepo.SeriesStore
}

// OpenStoreSet opens one SQLite store per asset class under dir
// (stocks.db, forex.db, commodities.db, etfs.db). Files are created
// lazily by SQLite on first write.
func OpenStoreSet(dir string, l *applogger.Logger) (*StoreSet, error) {
	stores := make(map[models.AssetClass]drepo.SeriesStore, 4)
	for _, class := range models.AllAssetClasses() {
		path := filepath.Join(dir, class.Plural()+".db")
		client, err := pkgsqlite.NewClient(pkgsqlite.WithPath(path))
		if err != nil {
			for _, s := range stores {
				_ = s.Close()
			}
			return nil, fmt.Errorf("open %s store: %w", class, err)
		}
		store := NewSQLiteSeriesStore(client, class)
		store.SetLogger(l)
		stores[class] = store
	}
	return &StoreSet{stores: stores}, nil
}

// For returns the store for an asset class.
func (s *StoreSet) For(class models.AssetClass) drepo.SeriesStore {
	return s.stores[class]
}

// All returns every store in the canonical class order.
func (s *StoreSet) All() []drepo.SeriesStore {
	out := make([]drepo.SeriesStore, 0, len(s.stores))
	for _, class := range models.AllAssetClasses() {
		if store, ok := s.stores[class]; ok {
			out = append(out, store)
		}
	}
	return out
}

// Health pings every store.
func (s *StoreSet) Health(ctx context.Context) error {
	for _, store := range s.stores {
		if err := store.Health(ctx); err != nil {
			return fmt.Errorf("%s store: %w", store.Class(), err)
		}
	}
	return nil
}

// Close closes every store, returning the first error.
func (s *StoreSet) Close() error {
	var first error
	for _, store := range s.stores {
		if err := store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
