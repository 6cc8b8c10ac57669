package repository

import (
	"context"
	"database/sql"
	"strings"

	"alumbrado/internal/models"
)

type InventorySQLite struct {
	db *sql.DB
}

func NewInventorySQLite(db *sql.DB) *InventorySQLite {
	return &InventorySQLite{db: db}
}

var _ InventoryRepo = (*InventorySQLite)(nil)

// Inventory is a full-state snapshot, not an append-only log: a later import
// with a seen streetlight id overwrites the prior record wholesale.
const upsertInventorySQL = `
		INSERT INTO inventory
		(streetlight_id, municipality, zone, lat, lon, account_number, situation, locality,
		 installed_at, marked, status, inaugurated_at, olc_address, dimming_calendar,
		 last_report_at, olc_id, luminaire_id, operating_hours, switch_count, cabinet_id,
		 cabinet_lat, cabinet_lon, nominal_power, designation, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(streetlight_id) DO UPDATE SET
			municipality=excluded.municipality,
			zone=excluded.zone,
			lat=excluded.lat,
			lon=excluded.lon,
			account_number=excluded.account_number,
			situation=excluded.situation,
			locality=excluded.locality,
			installed_at=excluded.installed_at,
			marked=excluded.marked,
			status=excluded.status,
			inaugurated_at=excluded.inaugurated_at,
			olc_address=excluded.olc_address,
			dimming_calendar=excluded.dimming_calendar,
			last_report_at=excluded.last_report_at,
			olc_id=excluded.olc_id,
			luminaire_id=excluded.luminaire_id,
			operating_hours=excluded.operating_hours,
			switch_count=excluded.switch_count,
			cabinet_id=excluded.cabinet_id,
			cabinet_lat=excluded.cabinet_lat,
			cabinet_lon=excluded.cabinet_lon,
			nominal_power=excluded.nominal_power,
			designation=excluded.designation,
			source_file=excluded.source_file
	`

const selectInventorySQL = `SELECT streetlight_id, municipality, zone, lat, lon, account_number, situation, locality, installed_at, marked, status, inaugurated_at, olc_address, dimming_calendar, last_report_at, olc_id, luminaire_id, operating_hours, switch_count, cabinet_id, cabinet_lat, cabinet_lon, nominal_power, designation, source_file FROM inventory`

func (r *InventorySQLite) BulkUpsert(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertInventorySQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.ExecContext(ctx,
			it.StreetlightID,
			it.Municipality,
			it.Zone,
			nullFloat(it.Lat),
			nullFloat(it.Lon),
			nullString(it.AccountNumber),
			nullString(it.Situation),
			nullString(it.Locality),
			nullTime(it.InstalledAt),
			nullString(it.Marked),
			nullString(it.Status),
			nullTime(it.InauguratedAt),
			nullString(it.OlcAddress),
			nullString(it.DimmingCalendar),
			nullTime(it.LastReportAt),
			nullInt(it.OlcID),
			nullString(it.LuminaireID),
			nullFloat(it.OperatingHours),
			nullInt(it.SwitchCount),
			nullString(it.CabinetID),
			nullFloat(it.CabinetLat),
			nullFloat(it.CabinetLon),
			nullString(it.NominalPower),
			nullString(it.Designation),
			it.SourceFile,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns the snapshot, optionally restricted to one municipality,
// ordered by municipality then id via the municipality index.
func (r *InventorySQLite) List(ctx context.Context, municipality string) ([]models.InventoryItem, error) {
	q := selectInventorySQL
	var args []any
	if municipality = strings.TrimSpace(municipality); municipality != "" {
		q += " WHERE municipality = ?"
		args = append(args, municipality)
	}
	q += " ORDER BY municipality ASC, streetlight_id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.InventoryItem, 0, 64)
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InventorySQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&n)
	return n, err
}

func (r *InventorySQLite) DeleteBySourceFile(ctx context.Context, fileName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE source_file = ?`, fileName)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanInventoryItem(rows *sql.Rows) (models.InventoryItem, error) {
	var (
		it                              models.InventoryItem
		account, situation, locality    sql.NullString
		marked, status, olcAddr, dimCal sql.NullString
		luminaire, cabinet              sql.NullString
		power, designation              sql.NullString
		installed, inaugurated, report  sql.NullTime
		lat, lon, hours, cabLat, cabLon sql.NullFloat64
		olcID, switches                 sql.NullInt64
	)
	if err := rows.Scan(
		&it.StreetlightID,
		&it.Municipality,
		&it.Zone,
		&lat,
		&lon,
		&account,
		&situation,
		&locality,
		&installed,
		&marked,
		&status,
		&inaugurated,
		&olcAddr,
		&dimCal,
		&report,
		&olcID,
		&luminaire,
		&hours,
		&switches,
		&cabinet,
		&cabLat,
		&cabLon,
		&power,
		&designation,
		&it.SourceFile,
	); err != nil {
		return models.InventoryItem{}, err
	}
	it.Lat = floatPtr(lat)
	it.Lon = floatPtr(lon)
	it.AccountNumber = account.String
	it.Situation = situation.String
	it.Locality = locality.String
	it.InstalledAt = timePtr(installed)
	it.Marked = marked.String
	it.Status = status.String
	it.InauguratedAt = timePtr(inaugurated)
	it.OlcAddress = olcAddr.String
	it.DimmingCalendar = dimCal.String
	it.LastReportAt = timePtr(report)
	it.OlcID = intPtr(olcID)
	it.LuminaireID = luminaire.String
	it.OperatingHours = floatPtr(hours)
	it.SwitchCount = intPtr(switches)
	it.CabinetID = cabinet.String
	it.CabinetLat = floatPtr(cabLat)
	it.CabinetLon = floatPtr(cabLon)
	it.NominalPower = power.String
	it.Designation = designation.String
	return it, nil
}
