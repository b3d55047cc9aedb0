package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"SeriesVault/internal/domain/models"
	drepo "SeriesVault/internal/domain/repository"
	pkgsqlite "SeriesVault/pkg/sqlite"
	applogger "SeriesVault/pkg/logger"
)

// SQLiteSeriesStore implements SeriesStore backed by one SQLite
// database file per asset class, one table per symbol.
type SQLiteSeriesStore struct {
	client *pkgsqlite.Client
	class  models.AssetClass
	l      *applogger.Logger

	// one lock per symbol; writes to the same symbol serialize,
	// different symbols proceed concurrently
	locks sync.Map // table name -> *sync.Mutex
}

// NewSQLiteSeriesStore creates a series store for one asset class.
func NewSQLiteSeriesStore(client *pkgsqlite.Client, class models.AssetClass) *SQLiteSeriesStore {
	return &SQLiteSeriesStore{client: client, class: class}
}

// SetLogger injects a structured logger.
func (s *SQLiteSeriesStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *SQLiteSeriesStore) Class() models.AssetClass { return s.class }

// TableName is the symbol's canonical table name: any "/" becomes "_".
func TableName(symbol string) (string, error) {
	name := strings.ReplaceAll(symbol, "/", "_")
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
		default:
			return "", fmt.Errorf("symbol %q contains unsupported character %q", symbol, r)
		}
	}
	return name, nil
}

func (s *SQLiteSeriesStore) EnsureTable(ctx context.Context, symbol string) error {
	table, err := TableName(symbol)
	if err != nil {
		return models.NewFaultWrap(models.FaultStorageError, "ensure table", err)
	}
	return s.ensureTable(ctx, table)
}

func (s *SQLiteSeriesStore) ensureTable(ctx context.Context, table string) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		date   TEXT PRIMARY KEY,
		open   REAL NOT NULL,
		high   REAL NOT NULL,
		low    REAL NOT NULL,
		close  REAL NOT NULL,
		volume REAL
	)`, table)
	if _, err := s.client.DB().ExecContext(ctx, q); err != nil {
		return models.NewFaultWrap(models.FaultStorageError,
			fmt.Sprintf("create table %s", table), err)
	}
	return nil
}

// Upsert writes observations idempotently within one transaction:
// insert absent dates, overwrite rows whose fields changed, skip
// identical rows. The date primary key keeps tables duplicate-free and
// date-ordered on read.
func (s *SQLiteSeriesStore) Upsert(ctx context.Context, symbol string, obs []models.Observation) (int, error) {
	start := time.Now()
	table, err := TableName(symbol)
	if err != nil {
		return 0, models.NewFaultWrap(models.FaultStorageError, "upsert", err)
	}

	mu := s.lockFor(table)
	mu.Lock()
	defer mu.Unlock()

	if err := s.ensureTable(ctx, table); err != nil {
		return 0, err
	}
	if len(obs) == 0 {
		return 0, nil
	}

	tx, err := s.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, models.NewFaultWrap(models.FaultStorageError, "begin upsert tx", err)
	}
	defer tx.Rollback()

	// RowsAffected is 1 for an insert or a real overwrite and 0 for an
	// identical row, which the WHERE clause turns into a no-op.
	q := fmt.Sprintf(`INSERT INTO %q (date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			open = excluded.open, high = excluded.high,
			low = excluded.low, close = excluded.close,
			volume = excluded.volume
		WHERE open IS NOT excluded.open OR high IS NOT excluded.high
			OR low IS NOT excluded.low OR close IS NOT excluded.close
			OR volume IS NOT excluded.volume`, table)

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, models.NewFaultWrap(models.FaultStorageError, "prepare upsert", err)
	}
	defer stmt.Close()

	written := 0
	for _, o := range obs {
		var vol interface{}
		if o.Volume != nil {
			vol = *o.Volume
		}
		res, err := stmt.ExecContext(ctx, o.Date, o.Open, o.High, o.Low, o.Close, vol)
		if err != nil {
			return 0, models.NewFaultWrap(models.FaultStorageError,
				fmt.Sprintf("upsert %s %s", table, o.Date), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, models.NewFaultWrap(models.FaultStorageError, "commit upsert", err)
	}

	if s.l != nil {
		s.l.Info("store upsert ok",
			applogger.String("class", string(s.class)),
			applogger.String("table", table),
			applogger.Int("input", len(obs)),
			applogger.Int("written", written),
			applogger.Duration("duration", time.Since(start)),
		)
	}
	return written, nil
}

func (s *SQLiteSeriesStore) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.client.DB().QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, models.NewFaultWrap(models.FaultStorageError, "list symbols", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, models.NewFaultWrap(models.FaultStorageError, "scan symbol", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *SQLiteSeriesStore) Read(ctx context.Context, symbol string) ([]models.Observation, error) {
	table, err := TableName(symbol)
	if err != nil {
		return nil, models.NewFaultWrap(models.FaultStorageError, "read", err)
	}

	q := fmt.Sprintf(`SELECT date, open, high, low, close, volume FROM %q ORDER BY date ASC`, table)
	rows, err := s.client.DB().QueryContext(ctx, q)
	if err != nil {
		return nil, models.NewFaultWrap(models.FaultStorageError,
			fmt.Sprintf("read table %s", table), err)
	}
	defer rows.Close()

	out := make([]models.Observation, 0, 128)
	for rows.Next() {
		var o models.Observation
		var vol sql.NullFloat64
		if err := rows.Scan(&o.Date, &o.Open, &o.High, &o.Low, &o.Close, &vol); err != nil {
			return nil, models.NewFaultWrap(models.FaultStorageError, "scan observation", err)
		}
		if vol.Valid {
			v := vol.Float64
			o.Volume = &v
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *SQLiteSeriesStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *SQLiteSeriesStore) Close() error {
	return s.client.Close()
}

func (s *SQLiteSeriesStore) lockFor(table string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(table, &sync.Mutex{})
	return v.(*sync.Mutex)
}

var _ drepo.SeriesStore = (*SQLiteSeriesStore)(nil)
