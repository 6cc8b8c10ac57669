package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"alumbrado/internal/csvparse"
	"alumbrado/internal/logger"
	"alumbrado/internal/models"
	"alumbrado/internal/repository"
)

var (
	errNotUTF8     = errors.New("file is not valid UTF-8 text")
	errEmptyFile   = errors.New("file has no data rows")
	errEmptyBackup = errors.New("backup contains no collections")
	errBadBackup   = errors.New("backup JSON is malformed")
	errFileNameReq = errors.New("file name is required")
)

type IngestService struct {
	repos *repository.Repository
	log   *logger.Logger
}

func NewIngestService(repos *repository.Repository, log *logger.Logger) *IngestService {
	return &IngestService{repos: repos, log: log}
}

var _ Ingest = (*IngestService)(nil)

// ImportLuminaireEvents ingests one failure-events CSV. Rows already resident
// (by uniqueEventId) are filtered out before the write, so re-uploading the
// same file, or a file with overlapping rows, never creates duplicates.
func (s *IngestService) ImportLuminaireEvents(ctx context.Context, fileName string, data []byte) (models.IngestReport, error) {
	lines, delim, err := prepareCSV(fileName, data)
	if err != nil {
		return models.IngestReport{}, err
	}

	var (
		batch   []models.LuminaireEvent
		skipped int
	)
	for _, line := range lines {
		fields := csvparse.SplitLine(line, delim)
		ev, reason := csvparse.BuildLuminaireEvent(fields, fileName)
		if reason != csvparse.SkipNone {
			skipped++
			continue
		}
		batch = append(batch, ev)
	}

	resident, err := s.repos.LuminaireEvents.Keys(ctx)
	if err != nil {
		return models.IngestReport{}, fmt.Errorf("load resident keys: %w", err)
	}
	fresh := make([]models.LuminaireEvent, 0, len(batch))
	seen := make(map[string]struct{}, len(batch))
	duplicates := 0
	for _, ev := range batch {
		if _, ok := resident[ev.UniqueEventID]; ok {
			duplicates++
			continue
		}
		if _, ok := seen[ev.UniqueEventID]; ok {
			duplicates++
			continue
		}
		seen[ev.UniqueEventID] = struct{}{}
		fresh = append(fresh, ev)
	}

	if err := s.repos.LuminaireEvents.BulkUpsert(ctx, fresh); err != nil {
		return models.IngestReport{}, fmt.Errorf("persist luminaire events: %w", err)
	}
	if err := s.recordFileName(ctx, fileName); err != nil {
		return models.IngestReport{}, err
	}

	report := s.report(models.KindLuminaireEvents, fileName, len(lines), len(fresh), duplicates, skipped)
	s.log.Infow("import finished", "kind", report.Kind, "file", fileName,
		"accepted", report.Accepted, "duplicates", duplicates, "skipped", skipped)
	return report, nil
}

// ImportChangeEvents ingests one change-events CSV with the same dedup
// semantics as failure events, keyed on the composite change id.
func (s *IngestService) ImportChangeEvents(ctx context.Context, fileName string, data []byte) (models.IngestReport, error) {
	lines, delim, err := prepareCSV(fileName, data)
	if err != nil {
		return models.IngestReport{}, err
	}

	var (
		batch   []models.ChangeEvent
		skipped int
	)
	for _, line := range lines {
		fields := csvparse.SplitLine(line, delim)
		ev, reason := csvparse.BuildChangeEvent(fields, fileName)
		if reason != csvparse.SkipNone {
			skipped++
			continue
		}
		batch = append(batch, ev)
	}

	resident, err := s.repos.ChangeEvents.Keys(ctx)
	if err != nil {
		return models.IngestReport{}, fmt.Errorf("load resident keys: %w", err)
	}
	fresh := make([]models.ChangeEvent, 0, len(batch))
	seen := make(map[string]struct{}, len(batch))
	duplicates := 0
	for _, ev := range batch {
		if _, ok := resident[ev.UniqueID]; ok {
			duplicates++
			continue
		}
		if _, ok := seen[ev.UniqueID]; ok {
			duplicates++
			continue
		}
		seen[ev.UniqueID] = struct{}{}
		fresh = append(fresh, ev)
	}

	if err := s.repos.ChangeEvents.BulkUpsert(ctx, fresh); err != nil {
		return models.IngestReport{}, fmt.Errorf("persist change events: %w", err)
	}
	if err := s.recordFileName(ctx, fileName); err != nil {
		return models.IngestReport{}, err
	}

	report := s.report(models.KindChangeEvents, fileName, len(lines), len(fresh), duplicates, skipped)
	s.log.Infow("import finished", "kind", report.Kind, "file", fileName,
		"accepted", report.Accepted, "duplicates", duplicates, "skipped", skipped)
	return report, nil
}

// ImportInventory ingests a snapshot: every parsed row is written
// unconditionally and rows with a seen streetlight id overwrite in the store.
// No dedup filter, by design.
func (s *IngestService) ImportInventory(ctx context.Context, fileName string, data []byte) (models.IngestReport, error) {
	lines, delim, err := prepareCSV(fileName, data)
	if err != nil {
		return models.IngestReport{}, err
	}

	var (
		batch   []models.InventoryItem
		skipped int
	)
	for _, line := range lines {
		fields := csvparse.SplitLine(line, delim)
		it, reason := csvparse.BuildInventoryItem(fields, fileName)
		if reason != csvparse.SkipNone {
			skipped++
			continue
		}
		batch = append(batch, it)
	}

	if err := s.repos.Inventory.BulkUpsert(ctx, batch); err != nil {
		return models.IngestReport{}, fmt.Errorf("persist inventory: %w", err)
	}
	if err := s.recordFileName(ctx, fileName); err != nil {
		return models.IngestReport{}, err
	}

	report := s.report(models.KindInventory, fileName, len(lines), len(batch), 0, skipped)
	s.log.Infow("import finished", "kind", report.Kind, "file", fileName,
		"accepted", report.Accepted, "skipped", skipped)
	return report, nil
}

// ImportBackup restores a combined JSON export. Log collections dedupe
// against resident keys, inventory overwrites, and the stored file-name list
// becomes the sorted union of both sides.
func (s *IngestService) ImportBackup(ctx context.Context, data []byte) (models.IngestReport, error) {
	if !utf8.Valid(data) {
		return models.IngestReport{}, errNotUTF8
	}
	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return models.IngestReport{}, fmt.Errorf("%w: %v", errBadBackup, err)
	}
	total := len(backup.LuminaireEvents) + len(backup.ChangeEvents) + len(backup.Inventory)
	if total == 0 {
		return models.IngestReport{}, errEmptyBackup
	}

	accepted := 0
	duplicates := 0

	eventKeys, err := s.repos.LuminaireEvents.Keys(ctx)
	if err != nil {
		return models.IngestReport{}, fmt.Errorf("load resident keys: %w", err)
	}
	freshEvents := make([]models.LuminaireEvent, 0, len(backup.LuminaireEvents))
	for _, ev := range backup.LuminaireEvents {
		if _, ok := eventKeys[ev.UniqueEventID]; ok {
			duplicates++
			continue
		}
		eventKeys[ev.UniqueEventID] = struct{}{}
		freshEvents = append(freshEvents, ev)
	}
	if err := s.repos.LuminaireEvents.BulkUpsert(ctx, freshEvents); err != nil {
		return models.IngestReport{}, fmt.Errorf("persist luminaire events: %w", err)
	}
	accepted += len(freshEvents)

	changeKeys, err := s.repos.ChangeEvents.Keys(ctx)
	if err != nil {
		return models.IngestReport{}, fmt.Errorf("load resident keys: %w", err)
	}
	freshChanges := make([]models.ChangeEvent, 0, len(backup.ChangeEvents))
	for _, ev := range backup.ChangeEvents {
		if _, ok := changeKeys[ev.UniqueID]; ok {
			duplicates++
			continue
		}
		changeKeys[ev.UniqueID] = struct{}{}
		freshChanges = append(freshChanges, ev)
	}
	if err := s.repos.ChangeEvents.BulkUpsert(ctx, freshChanges); err != nil {
		return models.IngestReport{}, fmt.Errorf("persist change events: %w", err)
	}
	accepted += len(freshChanges)

	if err := s.repos.Inventory.BulkUpsert(ctx, backup.Inventory); err != nil {
		return models.IngestReport{}, fmt.Errorf("persist inventory: %w", err)
	}
	accepted += len(backup.Inventory)

	for _, name := range backup.Metadata.FileNames {
		if err := s.recordFileName(ctx, name); err != nil {
			return models.IngestReport{}, err
		}
	}

	report := s.report(models.KindBackup, "", total, accepted, duplicates, 0)
	s.log.Infow("backup restored", "accepted", accepted, "duplicates", duplicates)
	return report, nil
}

// prepareCSV validates the upload, splits it into data lines and detects the
// delimiter from the header line. The header itself is not returned.
func prepareCSV(fileName string, data []byte) ([]string, rune, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, 0, errFileNameReq
	}
	if !utf8.Valid(data) {
		return nil, 0, errNotUTF8
	}

	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	var lines []string
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil, 0, errEmptyFile
	}
	return lines[1:], csvparse.DetectDelimiter(lines[0]), nil
}

// recordFileName appends fileName to the sorted metadata list, only if it is
// not already recorded. Called after the record write succeeds, never before.
func (s *IngestService) recordFileName(ctx context.Context, fileName string) error {
	value, ok, err := s.repos.Metadata.Get(ctx, repository.MetadataKeyFileNames)
	if err != nil {
		return fmt.Errorf("read file-name metadata: %w", err)
	}

	var names []string
	if ok {
		if err := json.Unmarshal([]byte(value), &names); err != nil {
			return fmt.Errorf("decode file-name metadata: %w", err)
		}
	}
	for _, n := range names {
		if n == fileName {
			return nil
		}
	}
	names = append(names, fileName)
	sort.Strings(names)

	encoded, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode file-name metadata: %w", err)
	}
	if err := s.repos.Metadata.Set(ctx, repository.MetadataKeyFileNames, string(encoded)); err != nil {
		return fmt.Errorf("write file-name metadata: %w", err)
	}
	return nil
}

func (s *IngestService) report(kind, fileName string, total, accepted, duplicates, skipped int) models.IngestReport {
	return models.IngestReport{
		RunID:      uuid.NewString(),
		Kind:       kind,
		FileName:   fileName,
		TotalRows:  total,
		Accepted:   accepted,
		Duplicates: duplicates,
		Skipped:    skipped,
		ImportedAt: time.Now().UTC(),
	}
}
