package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"SeriesVault/internal/domain/models"
	pkgcache "SeriesVault/pkg/cache"
	applogger "SeriesVault/pkg/logger"
)

// CacheReader serves query requests from the materialized cache
// document, with a short-TTL read-through cache in front of the file
// so hot symbols skip the full-document parse.
type CacheReader struct {
	path string
	qc   pkgcache.Service
	ttl  time.Duration
	l    *applogger.Logger
}

// NewCacheReader creates a reader over the cache document at path.
func NewCacheReader(path string, qc pkgcache.Service, ttl time.Duration, l *applogger.Logger) *CacheReader {
	return &CacheReader{path: path, qc: qc, ttl: ttl, l: l}
}

// Series returns the cache document subtree for (class, symbol). The
// boolean reports whether the symbol is present.
func (r *CacheReader) Series(ctx context.Context, class models.AssetClass, symbol string) ([]models.Observation, bool, error) {
	key := fmt.Sprintf("series:%s:%s", class.Plural(), symbol)

	if r.qc != nil {
		if raw, err := r.qc.Get(ctx, key); err == nil {
			var obs []models.Observation
			if err := json.Unmarshal([]byte(raw), &obs); err == nil {
				return obs, true, nil
			}
		}
	}

	doc, err := r.load()
	if err != nil {
		return nil, false, err
	}

	section, ok := doc[class.Plural()]
	if !ok {
		return nil, false, nil
	}
	obs, ok := section[symbol]
	if !ok {
		return nil, false, nil
	}

	if r.qc != nil {
		if raw, err := json.Marshal(obs); err == nil {
			if err := r.qc.Set(ctx, key, string(raw), r.ttl); err != nil && r.l != nil {
				r.l.Warn("query cache set failed", applogger.String("key", key), applogger.Error(err))
			}
		}
	}
	return obs, true, nil
}

// Invalidate drops cached query entries after a materialization so
// readers see the new document immediately.
func (r *CacheReader) Invalidate(ctx context.Context) {
	if r.qc == nil {
		return
	}
	if err := r.qc.DeleteByPattern(ctx, "series:*"); err != nil && r.l != nil {
		r.l.Warn("query cache invalidate failed", applogger.Error(err))
	}
}

func (r *CacheReader) load() (models.CacheDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.CacheDocument{}, nil
		}
		return nil, fmt.Errorf("read cache document: %w", err)
	}
	var doc models.CacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cache document: %w", err)
	}
	return doc, nil
}
