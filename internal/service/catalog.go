package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alumbrado/internal/models"
	"alumbrado/internal/repository"
)

type CatalogService struct {
	repos *repository.Repository
}

func NewCatalogService(repos *repository.Repository) *CatalogService {
	return &CatalogService{repos: repos}
}

var _ Catalog = (*CatalogService)(nil)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f RangeFilter) (RangeFilter, error) {
	f.From = normalizeToUTC(f.From)
	f.To = normalizeToUTC(f.To)
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return RangeFilter{}, errInvalidTimeRange
	}
	return f, nil
}

func (s *CatalogService) Events(ctx context.Context, f RangeFilter) ([]models.LuminaireEvent, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repos.LuminaireEvents.List(ctx, f.From, f.To, f.Zone)
}

func (s *CatalogService) Changes(ctx context.Context, f RangeFilter) ([]models.ChangeEvent, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repos.ChangeEvents.List(ctx, f.From, f.To, f.Zone)
}

func (s *CatalogService) Inventory(ctx context.Context, municipality string) ([]models.InventoryItem, error) {
	return s.repos.Inventory.List(ctx, municipality)
}

// Files returns the sorted list of every file name ever ingested.
func (s *CatalogService) Files(ctx context.Context) ([]string, error) {
	value, ok, err := s.repos.Metadata.Get(ctx, repository.MetadataKeyFileNames)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(value), &names); err != nil {
		return nil, fmt.Errorf("decode file-name metadata: %w", err)
	}
	return names, nil
}

// Summary reports record counts per collection plus the file list, the
// payload pushed over the WebSocket feed.
func (s *CatalogService) Summary(ctx context.Context) (models.DatasetSummary, error) {
	events, err := s.repos.LuminaireEvents.Count(ctx)
	if err != nil {
		return models.DatasetSummary{}, err
	}
	changes, err := s.repos.ChangeEvents.Count(ctx)
	if err != nil {
		return models.DatasetSummary{}, err
	}
	inventory, err := s.repos.Inventory.Count(ctx)
	if err != nil {
		return models.DatasetSummary{}, err
	}
	files, err := s.Files(ctx)
	if err != nil {
		return models.DatasetSummary{}, err
	}
	return models.DatasetSummary{
		LuminaireEvents: events,
		ChangeEvents:    changes,
		Inventory:       inventory,
		FileNames:       files,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// ExportBackup serializes the whole store into the combined backup form. The
// round trip through ImportBackup is lossless for every field.
func (s *CatalogService) ExportBackup(ctx context.Context) (models.Backup, error) {
	events, err := s.repos.LuminaireEvents.List(ctx, time.Time{}, time.Time{}, "")
	if err != nil {
		return models.Backup{}, err
	}
	changes, err := s.repos.ChangeEvents.List(ctx, time.Time{}, time.Time{}, "")
	if err != nil {
		return models.Backup{}, err
	}
	inventory, err := s.repos.Inventory.List(ctx, "")
	if err != nil {
		return models.Backup{}, err
	}
	files, err := s.Files(ctx)
	if err != nil {
		return models.Backup{}, err
	}
	return models.Backup{
		Metadata:        models.BackupMetadata{FileNames: files},
		LuminaireEvents: events,
		ChangeEvents:    changes,
		Inventory:       inventory,
	}, nil
}

// DeleteFile removes every record originating from fileName across all three
// collections and drops the name from the metadata list. Returns the number
// of deleted records.
func (s *CatalogService) DeleteFile(ctx context.Context, fileName string) (int64, error) {
	var total int64
	n, err := s.repos.LuminaireEvents.DeleteBySourceFile(ctx, fileName)
	if err != nil {
		return 0, err
	}
	total += n
	n, err = s.repos.ChangeEvents.DeleteBySourceFile(ctx, fileName)
	if err != nil {
		return 0, err
	}
	total += n
	n, err = s.repos.Inventory.DeleteBySourceFile(ctx, fileName)
	if err != nil {
		return 0, err
	}
	total += n

	files, err := s.Files(ctx)
	if err != nil {
		return 0, err
	}
	kept := files[:0]
	for _, f := range files {
		if f != fileName {
			kept = append(kept, f)
		}
	}
	encoded, err := json.Marshal(kept)
	if err != nil {
		return 0, fmt.Errorf("encode file-name metadata: %w", err)
	}
	if err := s.repos.Metadata.Set(ctx, repository.MetadataKeyFileNames, string(encoded)); err != nil {
		return 0, fmt.Errorf("write file-name metadata: %w", err)
	}
	return total, nil
}

// Reset drops and recreates the whole database.
func (s *CatalogService) Reset(ctx context.Context) error {
	return s.repos.Maintenance.Reset(ctx)
}
