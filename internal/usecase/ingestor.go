package usecase

import (
	"context"
	"time"

	"SeriesVault/internal/classify"
	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	applogger "SeriesVault/pkg/logger"
)

// Ingestor sequences classify -> fetch -> write -> materialize for one
// symbol and reports a structured result. Classification and fetch
// failures abort before any storage mutation; a materialization
// failure downgrades the result to written_cache_stale because storage
// is the source of truth and the cache is derived.
type Ingestor struct {
	provider     drepo.SeriesProvider
	stores       drepo.Stores
	materializer *Materializer
	events       drepo.EventPublisher
	metrics      drepo.Metrics
	l            *applogger.Logger
}

// NewIngestor creates the ingestion orchestrator. events may be nil.
func NewIngestor(
	provider drepo.SeriesProvider,
	stores drepo.Stores,
	materializer *Materializer,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *Ingestor {
	return &Ingestor{
		provider:     provider,
		stores:       stores,
		materializer: materializer,
		events:       events,
		metrics:      metrics,
		l:            l,
	}
}

// Ingest runs the pipeline for one (type, symbol) request.
func (i *Ingestor) Ingest(ctx context.Context, typ, symbol string) *models.IngestResult {
	start := time.Now()
	res := &models.IngestResult{Type: typ, Symbol: symbol, Stage: models.StageClassifying}

	cls, err := classify.Classify(symbol, typ)
	if err != nil {
		return i.fail(ctx, res, err)
	}
	res.Symbol = cls.Symbol

	res.Stage = models.StageFetching
	obs, err := i.provider.FetchDaily(ctx, cls.Function, cls.Symbol)
	if err != nil {
		return i.fail(ctx, res, err)
	}

	res.Stage = models.StageWriting
	store := i.stores.For(cls.Class)
	if len(obs) == 0 {
		// EmptyResult is not an error: create the empty-table marker
		// and carry on.
		res.Empty = true
		if err := store.EnsureTable(ctx, cls.Symbol); err != nil {
			return i.fail(ctx, res, err)
		}
	} else {
		written, err := store.Upsert(ctx, cls.Symbol, obs)
		if err != nil {
			return i.fail(ctx, res, err)
		}
		res.RowsWritten = written
		i.metrics.RecordRowsUpserted(cls.Class.Plural(), written)
	}

	res.Stage = models.StageMaterializing
	if _, err := i.materializer.Materialize(ctx); err != nil {
		// Storage already committed; report partial success.
		res.Status = models.IngestCacheStale
		res.FaultKind = models.FaultCacheWriteFailed
		res.Detail = err.Error()
		i.metrics.RecordFault(string(models.FaultCacheWriteFailed))
		i.l.Warn("ingest committed but cache is stale",
			applogger.String("symbol", cls.Symbol),
			applogger.Error(err),
		)
	} else {
		res.Status = models.IngestOK
	}
	res.Stage = models.StageDone

	// Label by the plural request value so success and failure land in
	// the same series (failures only know the raw request type).
	i.metrics.RecordIngest(cls.Class.Plural(), string(res.Status))
	i.metrics.RecordLatency("ingest", time.Since(start).Seconds())
	i.publish(ctx, res)

	i.l.Info("ingest done",
		applogger.String("class", string(cls.Class)),
		applogger.String("symbol", cls.Symbol),
		applogger.String("status", string(res.Status)),
		applogger.Int("rows", res.RowsWritten),
		applogger.Duration("duration", time.Since(start)),
	)
	return res
}

func (i *Ingestor) fail(ctx context.Context, res *models.IngestResult, err error) *models.IngestResult {
	res.Status = models.IngestFailed
	res.Stage = models.StageFailed
	res.FaultKind = models.FaultKindOf(err)
	res.Detail = err.Error()

	i.metrics.RecordIngest(res.Type, string(models.IngestFailed))
	if res.FaultKind != "" {
		i.metrics.RecordFault(string(res.FaultKind))
	}
	i.publish(ctx, res)

	i.l.Error("ingest failed",
		applogger.String("type", res.Type),
		applogger.String("symbol", res.Symbol),
		applogger.String("kind", string(res.FaultKind)),
		applogger.Error(err),
	)
	return res
}

// publish emits the result event best-effort; a broker hiccup never
// fails an ingestion.
func (i *Ingestor) publish(ctx context.Context, res *models.IngestResult) {
	if i.events == nil {
		return
	}
	if err := i.events.PublishIngest(ctx, res); err != nil {
		i.l.Warn("ingest event publish failed",
			applogger.String("symbol", res.Symbol),
			applogger.Error(err),
		)
	}
}
