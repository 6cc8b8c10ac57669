package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the SQLite DB file and migrates it to the current
// schema version.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

// CurrentSchemaVersion is the version a freshly migrated database carries.
const CurrentSchemaVersion = 4

// migrations run in order, keyed by the version they upgrade TO. Each step is
// additive only: a file written by an older build gains collections and
// indexes on open but never loses data. The applied version is tracked in
// PRAGMA user_version.
var migrations = []struct {
	version    int
	statements []string
}{
	{1, []string{schemaLuminaireEvents}},
	{2, []string{schemaChangeEvents, schemaInventory}},
	{3, []string{schemaMetadata, schemaUsers}},
	{4, []string{
		indexLuminaireEventsDate,
		indexLuminaireEventsSource,
		indexChangeEventsDate,
		indexChangeEventsSource,
		indexInventoryMunicipality,
		indexInventorySource,
	}},
}

const schemaLuminaireEvents = `
CREATE TABLE IF NOT EXISTS luminaire_events (
    unique_event_id TEXT PRIMARY KEY,
    luminaire_id TEXT NOT NULL,
    olc_id TEXT,
    nominal_power TEXT,
    event_date TIMESTAMP NOT NULL,
    municipality TEXT NOT NULL,
    zone TEXT NOT NULL,
    status TEXT NOT NULL,
    category TEXT,
    description TEXT,
    lat REAL,
    lon REAL,
    measured_power REAL,
    source_file TEXT NOT NULL
);
`

const schemaChangeEvents = `
CREATE TABLE IF NOT EXISTS change_events (
    unique_id TEXT PRIMARY KEY,
    pole_id TEXT NOT NULL,
    streetlight_id TEXT,
    cabinet_id TEXT,
    removed_at TIMESTAMP NOT NULL,
    condition TEXT,
    operating_hours REAL NOT NULL DEFAULT 0,
    switch_count INTEGER NOT NULL DEFAULT 0,
    municipality TEXT NOT NULL,
    zone TEXT NOT NULL,
    lat REAL,
    lon REAL,
    component TEXT,
    designation TEXT,
    source_file TEXT NOT NULL
);
`

const schemaInventory = `
CREATE TABLE IF NOT EXISTS inventory (
    streetlight_id TEXT PRIMARY KEY,
    municipality TEXT NOT NULL,
    zone TEXT NOT NULL,
    lat REAL,
    lon REAL,
    account_number TEXT,
    situation TEXT,
    locality TEXT,
    installed_at TIMESTAMP,
    marked TEXT,
    status TEXT,
    inaugurated_at TIMESTAMP,
    olc_address TEXT,
    dimming_calendar TEXT,
    last_report_at TIMESTAMP,
    olc_id INTEGER,
    luminaire_id TEXT,
    operating_hours REAL,
    switch_count INTEGER,
    cabinet_id TEXT,
    cabinet_lat REAL,
    cabinet_lon REAL,
    nominal_power TEXT,
    designation TEXT,
    source_file TEXT NOT NULL
);
`

const schemaMetadata = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

const (
	indexLuminaireEventsDate   = `CREATE INDEX IF NOT EXISTS idx_luminaire_events_date ON luminaire_events(event_date);`
	indexLuminaireEventsSource = `CREATE INDEX IF NOT EXISTS idx_luminaire_events_source ON luminaire_events(source_file);`
	indexChangeEventsDate      = `CREATE INDEX IF NOT EXISTS idx_change_events_removed ON change_events(removed_at);`
	indexChangeEventsSource    = `CREATE INDEX IF NOT EXISTS idx_change_events_source ON change_events(source_file);`
	indexInventoryMunicipality = `CREATE INDEX IF NOT EXISTS idx_inventory_municipality ON inventory(municipality);`
	indexInventorySource       = `CREATE INDEX IF NOT EXISTS idx_inventory_source ON inventory(source_file);`
)

// Migrate applies all pending migration steps. Opening an older file upgrades
// it in place; a file already at the current version is a no-op.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := applyMigration(db, m.version, m.statements); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, version int, statements []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", version, err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d statement %d: %w", version, i+1, err)
		}
	}
	// PRAGMA does not take placeholders
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d;", version)); err != nil {
		return fmt.Errorf("bump user_version to %d: %w", version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", version, err)
	}
	return nil
}

// Reset drops every collection and re-runs all migrations from scratch.
func Reset(db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS luminaire_events;`,
		`DROP TABLE IF EXISTS change_events;`,
		`DROP TABLE IF EXISTS inventory;`,
		`DROP TABLE IF EXISTS metadata;`,
		`DROP TABLE IF EXISTS users;`,
		`PRAGMA user_version = 0;`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return Migrate(db)
}
