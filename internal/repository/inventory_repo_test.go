package repository

import (
	"regexp"
	"testing"
	"time"

	"alumbrado/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInventoryBulkUpsert_ConflictUpdates(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewInventorySQLite(db)

	installed := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	olcID := int64(99812)
	item := models.InventoryItem{
		StreetlightID: "AP-1001",
		Municipality:  "PIEDRA BLANCA",
		Zone:          "ZONA D",
		Situation:     "instalada",
		InstalledAt:   &installed,
		OlcID:         &olcID,
		SourceFile:    "inv.csv",
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT(streetlight_id) DO UPDATE SET"))
	prep.ExpectExec().
		WithArgs("AP-1001", "PIEDRA BLANCA", "ZONA D",
			nil, nil, nil, "instalada", nil,
			"2020-02-01 00:00:00", nil, nil, nil, nil, nil, nil,
			olcID, nil, nil, nil, nil, nil, nil, nil, nil, "inv.csv").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.BulkUpsert(ctx(t), []models.InventoryItem{item}); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func inventoryColumns() []string {
	return []string{"streetlight_id", "municipality", "zone", "lat", "lon",
		"account_number", "situation", "locality", "installed_at", "marked",
		"status", "inaugurated_at", "olc_address", "dimming_calendar",
		"last_report_at", "olc_id", "luminaire_id", "operating_hours",
		"switch_count", "cabinet_id", "cabinet_lat", "cabinet_lon",
		"nominal_power", "designation", "source_file"}
}

func TestInventoryList_FilterByMunicipality(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewInventorySQLite(db)

	installed := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(inventoryColumns()).
		AddRow("AP-1001", "PIEDRA BLANCA", "ZONA D", -30.9, -64.5,
			nil, "instalada", nil, installed, nil,
			nil, nil, nil, nil,
			nil, int64(99812), "LUM-9", 40210.7,
			int64(5120), nil, nil, nil,
			"100W", nil, "inv.csv")

	query := selectInventorySQL + " WHERE municipality = ? ORDER BY municipality ASC, streetlight_id ASC"
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("PIEDRA BLANCA").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), " PIEDRA BLANCA ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1, got %d", len(got))
	}
	it := got[0]
	if it.OlcID == nil || *it.OlcID != 99812 {
		t.Fatalf("olc id: %v", it.OlcID)
	}
	if it.InstalledAt == nil || !it.InstalledAt.Equal(installed) {
		t.Fatalf("installed at: %v", it.InstalledAt)
	}
	if it.InauguratedAt != nil || it.LastReportAt != nil {
		t.Fatalf("null dates leaked: %+v", it)
	}
	if it.SwitchCount == nil || *it.SwitchCount != 5120 {
		t.Fatalf("switch count: %v", it.SwitchCount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestInventoryDeleteBySourceFile(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewInventorySQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM inventory WHERE source_file = ?`)).
		WithArgs("inv.csv").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.DeleteBySourceFile(ctx(t), "inv.csv")
	if err != nil {
		t.Fatalf("DeleteBySourceFile: %v", err)
	}
	if n != 7 {
		t.Fatalf("want 7 deleted, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
