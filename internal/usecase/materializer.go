package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	applogger "SeriesVault/pkg/logger"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// MaterializeStats summarizes one finished cache build.
type MaterializeStats struct {
	Symbols  int            `json:"symbols"`
	PerClass map[string]int `json:"per_class"`
}

// Materializer regenerates the cache document wholesale from current
// store contents and replaces the previous cache atomically. A reader
// of the cache path never observes a partially written document.
type Materializer struct {
	stores  drepo.Stores
	path    string
	metrics drepo.Metrics
	l       *applogger.Logger

	// concurrent materializations coalesce into the in-flight one;
	// both would produce an equivalent document
	sf singleflight.Group
}

// NewMaterializer creates a cache materializer writing to path.
func NewMaterializer(stores drepo.Stores, path string, metrics drepo.Metrics, l *applogger.Logger) *Materializer {
	return &Materializer{stores: stores, path: path, metrics: metrics, l: l}
}

// Materialize scans all stores, assembles the cache document, and
// atomically replaces the cache file. Empty tables are skipped. On
// failure the previous cache remains valid.
func (m *Materializer) Materialize(ctx context.Context) (*MaterializeStats, error) {
	v, err, _ := m.sf.Do("materialize", func() (interface{}, error) {
		return m.materialize(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*MaterializeStats), nil
}

func (m *Materializer) materialize(ctx context.Context) (*MaterializeStats, error) {
	start := time.Now()

	stores := m.stores.All()
	sections := make([]map[string][]models.Observation, len(stores))

	g, gctx := errgroup.WithContext(ctx)
	for i, store := range stores {
		g.Go(func() error {
			section, err := readStore(gctx, store)
			if err != nil {
				return err
			}
			sections[i] = section
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, models.NewFaultWrap(models.FaultCacheWriteFailed, "scan stores", err)
	}

	doc := make(models.CacheDocument, len(stores))
	stats := &MaterializeStats{PerClass: make(map[string]int, len(stores))}
	for i, store := range stores {
		key := store.Class().Plural()
		doc[key] = sections[i]
		stats.PerClass[key] = len(sections[i])
		stats.Symbols += len(sections[i])
	}

	if err := m.replaceCache(doc); err != nil {
		return nil, err
	}

	if m.metrics != nil {
		m.metrics.RecordCacheBuild(stats.Symbols)
		m.metrics.RecordLatency("materialize", time.Since(start).Seconds())
	}
	if m.l != nil {
		m.l.Info("cache materialized",
			applogger.String("path", m.path),
			applogger.Int("symbols", stats.Symbols),
			applogger.Duration("duration", time.Since(start)),
		)
	}
	return stats, nil
}

// readStore reads every non-empty table of one store; empty tables
// stay out of the document.
func readStore(ctx context.Context, store drepo.SeriesStore) (map[string][]models.Observation, error) {
	symbols, err := store.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s symbols: %w", store.Class(), err)
	}

	section := make(map[string][]models.Observation, len(symbols))
	for _, sym := range symbols {
		obs, err := store.Read(ctx, sym)
		if err != nil {
			return nil, fmt.Errorf("%s read %s: %w", store.Class(), sym, err)
		}
		if len(obs) == 0 {
			continue
		}
		section[sym] = obs
	}
	return section, nil
}

// replaceCache writes the document to a temp file in the cache
// directory and renames it over the previous cache.
func (m *Materializer) replaceCache(doc models.CacheDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "encode cache document", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "create cache directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "create temp cache", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "write temp cache", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "sync temp cache", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "close temp cache", err)
	}

	if err := os.Rename(tmpName, m.path); err != nil {
		_ = os.Remove(tmpName)
		return models.NewFaultWrap(models.FaultCacheWriteFailed, "replace cache", err)
	}
	return nil
}

// Path returns the cache file location.
func (m *Materializer) Path() string { return m.path }
