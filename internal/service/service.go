package service

import (
	"context"
	"time"

	"alumbrado/internal/logger"
	"alumbrado/internal/models"
	"alumbrado/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Ingest runs the per-upload pipeline: decode, tokenize, build, dedupe,
// persist, record the file name. One upload is processed to completion before
// the next begins; the pipeline itself performs no internal locking.
type Ingest interface {
	ImportLuminaireEvents(ctx context.Context, fileName string, data []byte) (models.IngestReport, error)
	ImportChangeEvents(ctx context.Context, fileName string, data []byte) (models.IngestReport, error)
	ImportInventory(ctx context.Context, fileName string, data []byte) (models.IngestReport, error)
	ImportBackup(ctx context.Context, data []byte) (models.IngestReport, error)
}

// Catalog is the read side plus the destructive store operations.
type Catalog interface {
	Events(ctx context.Context, f RangeFilter) ([]models.LuminaireEvent, error)
	Changes(ctx context.Context, f RangeFilter) ([]models.ChangeEvent, error)
	Inventory(ctx context.Context, municipality string) ([]models.InventoryItem, error)
	Files(ctx context.Context) ([]string, error)
	Summary(ctx context.Context) (models.DatasetSummary, error)
	ExportBackup(ctx context.Context) (models.Backup, error)
	DeleteFile(ctx context.Context, fileName string) (int64, error)
	Reset(ctx context.Context) error
}

// RangeFilter restricts event queries by date range and zone. Zero times mean
// no bound.
type RangeFilter struct {
	From time.Time
	To   time.Time
	Zone string
}

type Service struct {
	Ingest
	Catalog
	Authorization
}

func NewService(repos *repository.Repository, log *logger.Logger) *Service {
	return &Service{
		Ingest:        NewIngestService(repos, log),
		Catalog:       NewCatalogService(repos),
		Authorization: NewAuthService(repos.Auth),
	}
}
