package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"alumbrado/internal/models"
)

type LuminaireEventSQLite struct {
	db *sql.DB
}

func NewLuminaireEventSQLite(db *sql.DB) *LuminaireEventSQLite {
	return &LuminaireEventSQLite{db: db}
}

var _ LuminaireEventRepo = (*LuminaireEventSQLite)(nil)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
const sqliteTimeLayout = "2006-01-02 15:04:05"

const insertLuminaireEventSQL = `
		INSERT OR IGNORE INTO luminaire_events
		(unique_event_id, luminaire_id, olc_id, nominal_power, event_date, municipality, zone,
		 status, category, description, lat, lon, measured_power, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

const selectLuminaireEventsSQL = `SELECT unique_event_id, luminaire_id, olc_id, nominal_power, event_date, municipality, zone, status, category, description, lat, lon, measured_power, source_file FROM luminaire_events`

// BulkUpsert writes a batch inside one transaction. The pipeline filters
// already-resident keys before calling; OR IGNORE keeps a concurrent
// re-import from violating the primary key anyway.
func (r *LuminaireEventSQLite) BulkUpsert(ctx context.Context, events []models.LuminaireEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertLuminaireEventSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx,
			e.UniqueEventID,
			e.LuminaireID,
			nullString(e.OlcID),
			nullString(e.NominalPower),
			e.EventDate.UTC().Format(sqliteTimeLayout),
			e.Municipality,
			e.Zone,
			e.Status,
			nullString(e.Category),
			nullString(e.Description),
			nullFloat(e.Lat),
			nullFloat(e.Lon),
			nullFloat(e.MeasuredPower),
			e.SourceFile,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Keys returns the set of identity keys currently resident, used as the
// re-import dedup guard.
func (r *LuminaireEventSQLite) Keys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT unique_event_id FROM luminaire_events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{}, 256)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

// List returns events filtered by [from, to] (inclusive) and/or zone, ordered
// by event date ASC via the date index.
func (r *LuminaireEventSQLite) List(ctx context.Context, from, to time.Time, zone string) ([]models.LuminaireEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "event_date >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "event_date <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if zone = strings.TrimSpace(zone); zone != "" {
		conds = append(conds, "zone = ?")
		args = append(args, zone)
	}

	q := selectLuminaireEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY event_date ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.LuminaireEvent, 0, 64)
	for rows.Next() {
		e, err := scanLuminaireEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *LuminaireEventSQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM luminaire_events`).Scan(&n)
	return n, err
}

// DeleteBySourceFile removes every record imported from the given file.
func (r *LuminaireEventSQLite) DeleteBySourceFile(ctx context.Context, fileName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM luminaire_events WHERE source_file = ?`, fileName)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanLuminaireEvent(rows *sql.Rows) (models.LuminaireEvent, error) {
	var (
		e                models.LuminaireEvent
		olcID, power     sql.NullString
		category, desc   sql.NullString
		lat, lon, mPower sql.NullFloat64
	)
	if err := rows.Scan(
		&e.UniqueEventID,
		&e.LuminaireID,
		&olcID,
		&power,
		&e.EventDate,
		&e.Municipality,
		&e.Zone,
		&e.Status,
		&category,
		&desc,
		&lat,
		&lon,
		&mPower,
		&e.SourceFile,
	); err != nil {
		return models.LuminaireEvent{}, err
	}
	e.OlcID = olcID.String
	e.NominalPower = power.String
	e.Category = category.String
	e.Description = desc.String
	e.Lat = floatPtr(lat)
	e.Lon = floatPtr(lon)
	e.MeasuredPower = floatPtr(mPower)
	e.EventDate = e.EventDate.UTC()
	return e, nil
}

// null/pointer conversion helpers shared by the collection repos.

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}
