package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"alumbrado/internal/models"
)

type ChangeEventSQLite struct {
	db *sql.DB
}

func NewChangeEventSQLite(db *sql.DB) *ChangeEventSQLite {
	return &ChangeEventSQLite{db: db}
}

var _ ChangeEventRepo = (*ChangeEventSQLite)(nil)

const insertChangeEventSQL = `
		INSERT OR IGNORE INTO change_events
		(unique_id, pole_id, streetlight_id, cabinet_id, removed_at, condition, operating_hours,
		 switch_count, municipality, zone, lat, lon, component, designation, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

const selectChangeEventsSQL = `SELECT unique_id, pole_id, streetlight_id, cabinet_id, removed_at, condition, operating_hours, switch_count, municipality, zone, lat, lon, component, designation, source_file FROM change_events`

func (r *ChangeEventSQLite) BulkUpsert(ctx context.Context, events []models.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertChangeEventSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx,
			e.UniqueID,
			e.PoleID,
			nullString(e.StreetlightID),
			nullString(e.CabinetID),
			e.RemovedAt.UTC().Format(sqliteTimeLayout),
			nullString(e.Condition),
			e.OperatingHours,
			e.SwitchCount,
			e.Municipality,
			e.Zone,
			nullFloat(e.Lat),
			nullFloat(e.Lon),
			nullString(e.Component),
			nullString(e.Designation),
			e.SourceFile,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ChangeEventSQLite) Keys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT unique_id FROM change_events`)
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

// List returns change events filtered by removal date range and/or zone,
// ordered by removal date ASC.
func (r *ChangeEventSQLite) List(ctx context.Context, from, to time.Time, zone string) ([]models.ChangeEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "removed_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "removed_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if zone = strings.TrimSpace(zone); zone != "" {
		conds = append(conds, "zone = ?")
		args = append(args, zone)
	}

	q := selectChangeEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY removed_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ChangeEvent, 0, 64)
	for rows.Next() {
		var (
			e                      models.ChangeEvent
			streetlight, cabinet   sql.NullString
			condition, comp, desig sql.NullString
			lat, lon               sql.NullFloat64
		)
		if err := rows.Scan(
			&e.UniqueID,
			&e.PoleID,
			&streetlight,
			&cabinet,
			&e.RemovedAt,
			&condition,
			&e.OperatingHours,
			&e.SwitchCount,
			&e.Municipality,
			&e.Zone,
			&lat,
			&lon,
			&comp,
			&desig,
			&e.SourceFile,
		); err != nil {
			return nil, err
		}
		e.StreetlightID = streetlight.String
		e.CabinetID = cabinet.String
		e.Condition = condition.String
		e.Component = comp.String
		e.Designation = desig.String
		e.Lat = floatPtr(lat)
		e.Lon = floatPtr(lon)
		e.RemovedAt = e.RemovedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ChangeEventSQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM change_events`).Scan(&n)
	return n, err
}

func (r *ChangeEventSQLite) DeleteBySourceFile(ctx context.Context, fileName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM change_events WHERE source_file = ?`, fileName)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
