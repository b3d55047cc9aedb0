package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"SeriesVault/internal/domain/models"
	applogger "SeriesVault/pkg/logger"

	"github.com/stretchr/testify/require"
)

type ingestFixture struct {
	provider *fakeProvider
	stores   *fakeStores
	metrics  *fakeMetrics
	events   *fakeEvents
	path     string
	ingestor *Ingestor
}

func newIngestFixture(t *testing.T, provider *fakeProvider) *ingestFixture {
	t.Helper()
	f := &ingestFixture{
		provider: provider,
		stores:   newFakeStores(),
		metrics:  newFakeMetrics(),
		events:   &fakeEvents{},
		path:     cachePath(t),
	}
	mat := NewMaterializer(f.stores, f.path, f.metrics, applogger.Nop())
	f.ingestor = NewIngestor(provider, f.stores, mat, f.events, f.metrics, applogger.Nop())
	return f
}

func TestIngestSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	obs := []models.Observation{
		{Date: "2024-01-01", Open: 1, High: 1.5, Low: 0.9, Close: 1.2, Volume: f64(100)},
		{Date: "2024-01-02", Open: 2, High: 2.5, Low: 1.9, Close: 2.2, Volume: f64(200)},
	}
	f := newIngestFixture(t, &fakeProvider{obs: obs})

	res := f.ingestor.Ingest(ctx, "stocks", "aapl")
	require.Equal(t, models.IngestOK, res.Status)
	require.Equal(t, models.StageDone, res.Stage)
	require.Equal(t, "AAPL", res.Symbol)
	require.Equal(t, 2, res.RowsWritten)
	require.False(t, res.Empty)
	require.Empty(t, res.FaultKind)

	doc := readDoc(t, f.path)
	require.Equal(t, obs, doc["stocks"]["AAPL"])

	require.Equal(t, 1, f.metrics.ingests["stocks/ok"])
	require.Equal(t, 2, f.metrics.rows["stocks"])
	require.Equal(t, res, f.events.last())
}

func TestIngestUnsupportedClass(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newIngestFixture(t, &fakeProvider{})

	res := f.ingestor.Ingest(ctx, "crypto", "BTC")
	require.Equal(t, models.IngestFailed, res.Status)
	require.Equal(t, models.StageFailed, res.Stage)
	require.Equal(t, models.FaultUnsupportedAssetClass, res.FaultKind)

	// Nothing was fetched or written.
	require.Zero(t, f.provider.calls)
	_, err := os.Stat(f.path)
	require.True(t, os.IsNotExist(err))
}

func TestIngestInvalidSymbol(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newIngestFixture(t, &fakeProvider{})

	res := f.ingestor.Ingest(ctx, "forex", "EURUSD")
	require.Equal(t, models.IngestFailed, res.Status)
	require.Equal(t, models.FaultInvalidSymbolFormat, res.FaultKind)
	require.Zero(t, f.provider.calls)
}

func TestIngestProviderFailureLeavesStoresUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newIngestFixture(t, &fakeProvider{
		err: models.NewFault(models.FaultProviderError, "boom"),
	})

	res := f.ingestor.Ingest(ctx, "stocks", "AAPL")
	require.Equal(t, models.IngestFailed, res.Status)
	require.Equal(t, models.FaultProviderError, res.FaultKind)

	symbols, err := f.stores.For(models.AssetStock).Symbols(ctx)
	require.NoError(t, err)
	require.Empty(t, symbols)
	require.Equal(t, 1, f.metrics.faults["ProviderError"])

	// Success and failure label the same class series identically.
	require.Equal(t, 1, f.metrics.ingests["stocks/failed"])
}

func TestIngestRateLimited(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newIngestFixture(t, &fakeProvider{
		err: models.NewFault(models.FaultRateLimited, "slow down"),
	})

	res := f.ingestor.Ingest(ctx, "stocks", "AAPL")
	require.Equal(t, models.IngestFailed, res.Status)
	require.Equal(t, models.FaultRateLimited, res.FaultKind)
}

// An empty provider result is a success: the table marker exists but
// the symbol stays out of the cache document.
func TestIngestEmptyResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newIngestFixture(t, &fakeProvider{obs: nil})

	res := f.ingestor.Ingest(ctx, "stocks", "NEWIPO")
	require.Equal(t, models.IngestOK, res.Status)
	require.True(t, res.Empty)
	require.Zero(t, res.RowsWritten)

	symbols, err := f.stores.For(models.AssetStock).Symbols(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"NEWIPO"}, symbols)

	doc := readDoc(t, f.path)
	require.NotContains(t, doc["stocks"], "NEWIPO")
}

// When storage commits but the cache cannot be replaced, the result is
// the partial-success status and the rows stay written.
func TestIngestWrittenButCacheStale(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	obs := []models.Observation{
		{Date: "2024-01-01", Open: 1, High: 1, Low: 1, Close: 1},
	}
	f := newIngestFixture(t, &fakeProvider{obs: obs})

	// Point the materializer at a path under a regular file.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	mat := NewMaterializer(f.stores, filepath.Join(blocker, "market_data.json"), f.metrics, applogger.Nop())
	ingestor := NewIngestor(f.provider, f.stores, mat, f.events, f.metrics, applogger.Nop())

	res := ingestor.Ingest(ctx, "stocks", "AAPL")
	require.Equal(t, models.IngestCacheStale, res.Status)
	require.Equal(t, models.StageDone, res.Stage)
	require.Equal(t, models.FaultCacheWriteFailed, res.FaultKind)
	require.Equal(t, 1, res.RowsWritten)

	got, err := f.stores.For(models.AssetStock).Read(ctx, "AAPL")
	require.NoError(t, err)
	require.Equal(t, obs, got)
	require.Equal(t, 1, f.metrics.ingests["stocks/written_cache_stale"])
}

func TestIngestCommodityProxy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	obs := []models.Observation{
		{Date: "2024-01-01", Open: 180, High: 182, Low: 179, Close: 181, Volume: f64(1000)},
	}
	f := newIngestFixture(t, &fakeProvider{obs: obs})

	res := f.ingestor.Ingest(ctx, "commodities", "gld")
	require.Equal(t, models.IngestOK, res.Status)
	require.Equal(t, "GLD", res.Symbol)
	require.Equal(t, 1, f.metrics.ingests["commodities/ok"])
	require.Equal(t, 1, f.metrics.rows["commodities"])

	doc := readDoc(t, f.path)
	require.Equal(t, obs, doc["commodities"]["GLD"])
}

func TestIngestNilEventsPublisher(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newIngestFixture(t, &fakeProvider{obs: []models.Observation{
		{Date: "2024-01-01", Open: 1, High: 1, Low: 1, Close: 1},
	}})
	mat := NewMaterializer(f.stores, f.path, f.metrics, applogger.Nop())
	ingestor := NewIngestor(f.provider, f.stores, mat, nil, f.metrics, applogger.Nop())

	res := ingestor.Ingest(ctx, "stocks", "AAPL")
	require.Equal(t, models.IngestOK, res.Status)
}

func TestIngestPublishFailureDoesNotFailIngest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newIngestFixture(t, &fakeProvider{obs: []models.Observation{
		{Date: "2024-01-01", Open: 1, High: 1, Low: 1, Close: 1},
	}})
	f.events.err = os.ErrDeadlineExceeded

	res := f.ingestor.Ingest(ctx, "stocks", "AAPL")
	require.Equal(t, models.IngestOK, res.Status)
}
