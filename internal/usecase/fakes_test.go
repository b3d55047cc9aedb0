package usecase

import (
	"context"
	"sync"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
)

func f64(v float64) *float64 { return &v }

type fakeProvider struct {
	obs   []models.Observation
	err   error
	calls int
}

func (p *fakeProvider) FetchDaily(_ context.Context, _ models.ProviderFunction, _ string) ([]models.Observation, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.obs, nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	ingests   map[string]int
	faults    map[string]int
	rows      map[string]int
	cacheSyms int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		ingests: make(map[string]int),
		faults:  make(map[string]int),
		rows:    make(map[string]int),
	}
}

func (m *fakeMetrics) RecordIngest(class, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingests[class+"/"+status]++
}

func (m *fakeMetrics) RecordRowsUpserted(class string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[class] += n
}

func (m *fakeMetrics) RecordFault(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[kind]++
}

func (m *fakeMetrics) RecordLatency(_ string, _ float64) {}

func (m *fakeMetrics) RecordCacheBuild(symbols int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheSyms = symbols
}

type fakeEvents struct {
	mu        sync.Mutex
	published []*models.IngestResult
	err       error
}

func (e *fakeEvents) PublishIngest(_ context.Context, res *models.IngestResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.published = append(e.published, res)
	return nil
}

func (e *fakeEvents) Close() error { return nil }

func (e *fakeEvents) last() *models.IngestResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.published) == 0 {
		return nil
	}
	return e.published[len(e.published)-1]
}

// fakeStore is an in-memory SeriesStore for failure injection and call
// counting; the SQLite-backed tests live in internal/repository.
type fakeStore struct {
	mu      sync.Mutex
	class   models.AssetClass
	tables  map[string][]models.Observation
	readErr error
	scans   int
}

func newFakeStore(class models.AssetClass) *fakeStore {
	return &fakeStore{class: class, tables: make(map[string][]models.Observation)}
}

func (s *fakeStore) Class() models.AssetClass { return s.class }

func (s *fakeStore) EnsureTable(_ context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[symbol]; !ok {
		s.tables[symbol] = nil
	}
	return nil
}

func (s *fakeStore) Upsert(_ context.Context, symbol string, obs []models.Observation) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.tables[symbol]
	s.tables[symbol] = obs
	if len(prev) == len(obs) {
		return 0, nil
	}
	return len(obs), nil
}

func (s *fakeStore) Symbols(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++
	out := make([]string, 0, len(s.tables))
	for sym := range s.tables {
		out = append(out, sym)
	}
	return out, nil
}

func (s *fakeStore) Read(_ context.Context, symbol string) ([]models.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.tables[symbol], nil
}

func (s *fakeStore) Health(_ context.Context) error { return nil }
func (s *fakeStore) Close() error                   { return nil }

type fakeStores struct {
	byClass map[models.AssetClass]*fakeStore
}

func newFakeStores() *fakeStores {
	out := &fakeStores{byClass: make(map[models.AssetClass]*fakeStore)}
	for _, class := range models.AllAssetClasses() {
		out.byClass[class] = newFakeStore(class)
	}
	return out
}

func (s *fakeStores) For(class models.AssetClass) drepo.SeriesStore { return s.byClass[class] }

func (s *fakeStores) All() []drepo.SeriesStore {
	out := make([]drepo.SeriesStore, 0, len(s.byClass))
	for _, class := range models.AllAssetClasses() {
		out = append(out, s.byClass[class])
	}
	return out
}

func (s *fakeStores) Health(_ context.Context) error { return nil }
func (s *fakeStores) Close() error                   { return nil }
