// Package persistence exports batch-run statistics to SQLite. Live
// simulation state is never persisted here — only the per-tick snapshots a
// batch run wants to keep after it exits.
package persistence

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	strftime "github.com/ncruces/go-strftime"
	_ "modernc.org/sqlite"

	"github.com/talgya/tidemarket/internal/stats"
)

// DB wraps a SQLite connection used for batch-mode stats export. SQLite
// allows only one writer at a time; writeMu serializes InsertRun/
// InsertSnapshot app-side instead of leaning on the driver's busy-timeout
// retry, so a batch run with many concurrent repetitions (design doc
// Section 5) can't have a write starved into a SQLITE_BUSY error under load.
type DB struct {
	conn    *sqlx.DB
	writeMu sync.Mutex
}

// Open opens or creates a SQLite database at path and ensures its schema
// exists.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", path, err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("persistence: migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		config_seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tick_stats (
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		alive_count INTEGER NOT NULL,
		death_count INTEGER NOT NULL,
		gini REAL NOT NULL,
		avg_greed REAL NOT NULL,
		wheat_price REAL NOT NULL,
		berry_price REAL NOT NULL,
		fish_price REAL NOT NULL,
		meat_price REAL NOT NULL,
		wheat_demand INTEGER NOT NULL,
		berry_demand INTEGER NOT NULL,
		fish_demand INTEGER NOT NULL,
		meat_demand INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE TABLE IF NOT EXISTS job_counts (
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		job INTEGER NOT NULL,
		count INTEGER NOT NULL,
		avg_cash REAL NOT NULL,
		PRIMARY KEY (run_id, tick, job)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is the metadata row describing one batch instance, keyed by a
// freshly-generated run id rather than anything derived from config
// content, so two runs with identical seeds stay distinguishable.
type Run struct {
	ID         string
	StartedAt  time.Time
	ConfigSeed int64
	Width      int
	Height     int
}

// NewRun generates a fresh run identity, timestamped at creation.
func NewRun(seed int64, width, height int) Run {
	return Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		ConfigSeed: seed,
		Width:      width,
		Height:     height,
	}
}

// InsertRun records a run's metadata row.
func (db *DB) InsertRun(r Run) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	startedAt := strftime.Format("%Y-%m-%d %H:%M:%S", r.StartedAt)
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, started_at, config_seed, width, height) VALUES (?, ?, ?, ?, ?)`,
		r.ID, startedAt, r.ConfigSeed, r.Width, r.Height,
	)
	return err
}

// InsertSnapshot writes one tick's aggregated statistics for runID.
func (db *DB) InsertSnapshot(runID string, snap stats.Snapshot) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO tick_stats
			(run_id, tick, alive_count, death_count, gini, avg_greed,
			 wheat_price, berry_price, fish_price, meat_price,
			 wheat_demand, berry_demand, fish_demand, meat_demand)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, snap.Tick, snap.AliveCount, snap.DeathCount, snap.Gini, snap.AvgGreed,
		snap.Market.MarketPrice[0], snap.Market.MarketPrice[1], snap.Market.MarketPrice[2], snap.Market.MarketPrice[3],
		snap.Market.MarketDemand[0], snap.Market.MarketDemand[1], snap.Market.MarketDemand[2], snap.Market.MarketDemand[3],
	)
	if err != nil {
		return fmt.Errorf("persistence: insert tick_stats: %w", err)
	}

	for job, count := range snap.JobCounts {
		_, err = tx.Exec(
			`INSERT INTO job_counts (run_id, tick, job, count, avg_cash) VALUES (?, ?, ?, ?, ?)`,
			runID, snap.Tick, int(job), count, snap.AvgJobCash[job],
		)
		if err != nil {
			return fmt.Errorf("persistence: insert job_counts: %w", err)
		}
	}

	return tx.Commit()
}
