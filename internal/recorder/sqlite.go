package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"TickerScope/internal/model"
)

// SQLiteRecorder persists analysis output to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logrus.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tickers (
			ticker TEXT PRIMARY KEY,
			name   TEXT
		)`,

		// Decimal values are stored as TEXT to keep the exact output
		// representation round-trippable.
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			ticker               TEXT NOT NULL,
			date                 TEXT NOT NULL,
			close                TEXT NOT NULL,
			sma_50               TEXT,
			sma_200              TEXT,
			high_52w             TEXT,
			pct_from_high_52w    TEXT,
			book_value_per_share TEXT,
			price_to_book        TEXT,
			enterprise_value     TEXT,
			PRIMARY KEY (ticker, date)
		)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			ticker      TEXT NOT NULL,
			date        TEXT NOT NULL,
			signal_type TEXT NOT NULL,
			PRIMARY KEY (ticker, date, signal_type)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) SaveTicker(ticker, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO tickers (ticker, name) VALUES (?, ?)
		ON CONFLICT(ticker) DO UPDATE SET name = excluded.name`,
		ticker, name)
	return err
}

func (r *SQLiteRecorder) SaveDailyMetrics(metrics []model.DailyMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_metrics
		(ticker, date, close, sma_50, sma_200, high_52w, pct_from_high_52w,
		 book_value_per_share, price_to_book, enterprise_value)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			close = excluded.close,
			sma_50 = excluded.sma_50,
			sma_200 = excluded.sma_200,
			high_52w = excluded.high_52w,
			pct_from_high_52w = excluded.pct_from_high_52w,
			book_value_per_share = excluded.book_value_per_share,
			price_to_book = excluded.price_to_book,
			enterprise_value = excluded.enterprise_value`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, m := range metrics {
		_, err := stmt.Exec(
			m.Ticker, m.DateKey(), m.Close.String(),
			decText(m.SMA50), decText(m.SMA200), decText(m.High52w),
			decText(m.PctFromHigh52w), decText(m.BookValuePerShare),
			decText(m.PriceToBook), decText(m.EnterpriseValue),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert metric %s: %w", m.DateKey(), err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) SaveSignalEvents(events []model.SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, e := range events {
		_, err := tx.Exec(`INSERT INTO signal_events (ticker, date, signal_type)
			VALUES (?,?,?)
			ON CONFLICT(ticker, date, signal_type) DO NOTHING`,
			e.Ticker, e.Date.Format(model.DateFormat), string(e.Type))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert signal %s: %w", e.Date.Format(model.DateFormat), err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	logrus.Info("closing sqlite recorder")
	return r.db.Close()
}

func decText(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}
