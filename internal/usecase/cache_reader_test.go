package usecase

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"SeriesVault/internal/domain/models"
	pkgcache "SeriesVault/pkg/cache"
	applogger "SeriesVault/pkg/logger"

	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, path string, doc models.CacheDocument) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestCacheReaderHit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := cachePath(t)

	obs := []models.Observation{
		{Date: "2024-01-01", Open: 1, High: 1.5, Low: 0.9, Close: 1.2, Volume: f64(100)},
	}
	writeDoc(t, path, models.CacheDocument{"stocks": {"AAPL": obs}})

	r := NewCacheReader(path, nil, 0, applogger.Nop())
	got, ok, err := r.Series(ctx, models.AssetStock, "AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, obs, got)
}

func TestCacheReaderMissingSymbol(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := cachePath(t)
	writeDoc(t, path, models.CacheDocument{"stocks": {}})

	r := NewCacheReader(path, nil, 0, applogger.Nop())
	_, ok, err := r.Series(ctx, models.AssetStock, "NOPE")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = r.Series(ctx, models.AssetForex, "EUR_USD")
	require.NoError(t, err)
	require.False(t, ok)
}

// A missing cache file reads as an empty document, not an error.
func TestCacheReaderNoFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := NewCacheReader(cachePath(t), nil, 0, applogger.Nop())
	_, ok, err := r.Series(ctx, models.AssetStock, "AAPL")
	require.NoError(t, err)
	require.False(t, ok)
}

// The read-through cache serves repeat lookups until invalidated.
func TestCacheReaderReadThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := cachePath(t)

	obs := []models.Observation{
		{Date: "2024-01-01", Open: 1, High: 1, Low: 1, Close: 1},
	}
	writeDoc(t, path, models.CacheDocument{"stocks": {"AAPL": obs}})

	qc := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = qc.Close() })

	r := NewCacheReader(path, qc, time.Minute, applogger.Nop())
	got, ok, err := r.Series(ctx, models.AssetStock, "AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, obs, got)

	// The document on disk changes; the cached entry still answers.
	revised := []models.Observation{
		{Date: "2024-01-01", Open: 9, High: 9, Low: 9, Close: 9},
	}
	writeDoc(t, path, models.CacheDocument{"stocks": {"AAPL": revised}})

	got, ok, err = r.Series(ctx, models.AssetStock, "AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, obs, got)

	// After invalidation the fresh document wins.
	r.Invalidate(ctx)
	got, ok, err = r.Series(ctx, models.AssetStock, "AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, revised, got)
}
