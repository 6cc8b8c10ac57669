package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"alumbrado/internal/logger"
)

// Export on one store, import on an empty one: every record and the file list
// must come back intact.
func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newTestRepos()
	ingest := newTestIngest(source)
	catalog := NewCatalogService(source)

	events := failureCSV(
		failureRow("SAN ISIDRO", "Hurto", "", "EV-1", "01/03/24 08:00"),
		failureRow("TRES ARROYOS", "", "Broken", "EV-2", "02/03/24 08:00"),
	)
	if _, err := ingest.ImportLuminaireEvents(ctx, "eventos.csv", events); err != nil {
		t.Fatalf("seed events: %v", err)
	}
	inv := inventoryHeader + "\n" + inventoryRow("SAN ISIDRO", "AP-1", "instalada") + "\n"
	if _, err := ingest.ImportInventory(ctx, "inv.csv", []byte(inv)); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	backup, err := catalog.ExportBackup(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	encoded, err := json.Marshal(backup)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	target := newTestRepos()
	report, err := NewIngestService(target, logger.Get(logger.ErrorLevel)).ImportBackup(ctx, encoded)
	if err != nil {
		t.Fatalf("import backup: %v", err)
	}
	if report.Accepted != 3 || report.Duplicates != 0 {
		t.Fatalf("report: %+v", report)
	}

	restored, err := NewCatalogService(target).ExportBackup(ctx)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if len(restored.LuminaireEvents) != 2 || len(restored.Inventory) != 1 {
		t.Fatalf("restored sizes: %d events, %d inventory",
			len(restored.LuminaireEvents), len(restored.Inventory))
	}
	for i := range backup.LuminaireEvents {
		orig, got := backup.LuminaireEvents[i], restored.LuminaireEvents[i]
		if got.UniqueEventID != orig.UniqueEventID || got.Status != orig.Status ||
			got.Category != orig.Category || got.Zone != orig.Zone {
			t.Fatalf("event %d changed: %+v vs %+v", i, orig, got)
		}
		if !got.EventDate.Equal(orig.EventDate) {
			t.Fatalf("event %d date: got %v, want %v", i, got.EventDate, orig.EventDate)
		}
	}
	if len(restored.Metadata.FileNames) != 2 {
		t.Fatalf("file names: got %v", restored.Metadata.FileNames)
	}

	// Importing the same backup again must be a no-op for the log collections.
	again, err := NewIngestService(target, logger.Get(logger.ErrorLevel)).ImportBackup(ctx, encoded)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if again.Duplicates != 2 {
		t.Fatalf("second import duplicates: got %d, want 2", again.Duplicates)
	}
}

func TestImportBackup_RejectsMalformedAndEmpty(t *testing.T) {
	svc := newTestIngest(newTestRepos())
	ctx := context.Background()

	if _, err := svc.ImportBackup(ctx, []byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	empty, _ := json.Marshal(map[string]any{"metadata": map[string]any{"fileNames": []string{}}})
	if _, err := svc.ImportBackup(ctx, empty); err == nil {
		t.Fatalf("expected error for backup with no collections")
	}
}

func TestDeleteFile_RemovesRecordsAndName(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	ingest := newTestIngest(repos)
	catalog := NewCatalogService(repos)

	keep := failureCSV(failureRow("SAN ISIDRO", "", "Broken", "EV-1", "01/03/24 08:00"))
	drop := failureCSV(
		failureRow("SAN ISIDRO", "", "Broken", "EV-2", "02/03/24 08:00"),
		failureRow("SAN ISIDRO", "", "Broken", "EV-3", "03/03/24 08:00"),
	)
	if _, err := ingest.ImportLuminaireEvents(ctx, "keep.csv", keep); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := ingest.ImportLuminaireEvents(ctx, "drop.csv", drop); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := catalog.DeleteFile(ctx, "drop.csv")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 2 {
		t.Fatalf("deleted: got %d, want 2", n)
	}

	events, _ := catalog.Events(ctx, RangeFilter{})
	if len(events) != 1 || events[0].UniqueEventID != "EV-1" {
		t.Fatalf("surviving events: %+v", events)
	}
	files, _ := catalog.Files(ctx)
	if len(files) != 1 || files[0] != "keep.csv" {
		t.Fatalf("files after delete: %v", files)
	}
}

func TestSummary_CountsAndFiles(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	ingest := newTestIngest(repos)
	catalog := NewCatalogService(repos)

	data := failureCSV(failureRow("SAN ISIDRO", "", "Broken", "EV-1", "01/03/24 08:00"))
	if _, err := ingest.ImportLuminaireEvents(ctx, "eventos.csv", data); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sum, err := catalog.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.LuminaireEvents != 1 || sum.ChangeEvents != 0 || sum.Inventory != 0 {
		t.Fatalf("counts: %+v", sum)
	}
	if len(sum.FileNames) != 1 || sum.FileNames[0] != "eventos.csv" {
		t.Fatalf("file names: %v", sum.FileNames)
	}
	if sum.GeneratedAt.IsZero() {
		t.Fatalf("generated at not set")
	}
}

func TestEvents_RejectsInvertedRange(t *testing.T) {
	catalog := NewCatalogService(newTestRepos())
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)
	if _, err := catalog.Events(context.Background(), RangeFilter{From: from, To: to}); err == nil {
		t.Fatalf("expected error when From is after To")
	}
	if _, err := catalog.Changes(context.Background(), RangeFilter{From: from, To: to}); err == nil {
		t.Fatalf("expected error when From is after To")
	}
}
