package di

import (
	"fmt"

	"SeriesVault/internal/domain/repository"
	"SeriesVault/internal/handler/api"
	internalrepo "SeriesVault/internal/repository"
	"SeriesVault/internal/service/alphavantage"
	"SeriesVault/internal/usecase"
	pkgcache "SeriesVault/pkg/cache"
	"SeriesVault/pkg/config"
	xhttp "SeriesVault/pkg/http"
	pkgkafka "SeriesVault/pkg/kafka"
	"SeriesVault/pkg/logger"
	"SeriesVault/pkg/metrics"
	"SeriesVault/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStores opens the four per-asset-class SQLite stores.
func ProvideStores(cfg *config.Config, l *logger.Logger) (repository.Stores, error) {
	stores, err := internalrepo.OpenStoreSet(cfg.Storage.Dir, l)
	if err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	return stores, nil
}

// ProvideSeriesProvider creates the Alpha Vantage client.
func ProvideSeriesProvider(cfg *config.Config, l *logger.Logger) repository.SeriesProvider {
	return alphavantage.New(
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Provider.OutputSize,
		cfg.Provider.Timeout,
		cfg.Provider.RequestsPerMinute,
		l,
	)
}

// ProvideEventPublisher creates the Kafka ingest-event publisher, or
// nil when no brokers are configured.
func ProvideEventPublisher(cfg *config.Config) (repository.EventPublisher, error) {
	if !cfg.EventsEnabled() {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Events.Topic), nil
}

// ProvideQueryCache creates the query-layer cache backend.
func ProvideQueryCache(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.QueryCache.Backend {
	case "redis":
		qc, err := pkgcache.NewRedisCache(
			pkgcache.WithAddr(cfg.QueryCache.Redis.Addr),
			pkgcache.WithPassword(cfg.QueryCache.Redis.Password),
			pkgcache.WithDB(cfg.QueryCache.Redis.DB),
			pkgcache.WithPrefix(cfg.QueryCache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("query cache: %w", err)
		}
		return qc, nil
	default:
		return pkgcache.NewMemoryCache(), nil
	}
}

// ProvideMaterializer creates the cache materializer.
func ProvideMaterializer(stores repository.Stores, cfg *config.Config, m repository.Metrics, l *logger.Logger) *usecase.Materializer {
	return usecase.NewMaterializer(stores, cfg.Cache.Path, m, l)
}

// ProvideIngestor creates the ingestion orchestrator.
func ProvideIngestor(
	provider repository.SeriesProvider,
	stores repository.Stores,
	materializer *usecase.Materializer,
	events repository.EventPublisher,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Ingestor {
	return usecase.NewIngestor(provider, stores, materializer, events, m, l)
}

// ProvideCacheReader creates the query-side cache reader.
func ProvideCacheReader(cfg *config.Config, qc pkgcache.Service, l *logger.Logger) *usecase.CacheReader {
	return usecase.NewCacheReader(cfg.Cache.Path, qc, cfg.QueryCache.TTL, l)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *logger.Logger, ingestor *usecase.Ingestor, reader *usecase.CacheReader, stores repository.Stores) xhttp.Handler {
	return api.NewSeriesEchoHandler(l, ingestor, reader, stores)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	stores repository.Stores,
	events repository.EventPublisher,
	qc pkgcache.Service,
) *server.App {
	return server.New(cfg, l, handler, stores, events, qc)
}
