package repository

import (
	"context"
	"database/sql"
	"time"

	"alumbrado/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// LuminaireEventRepo is the append-only failure-event collection.
type LuminaireEventRepo interface {
	BulkUpsert(ctx context.Context, events []models.LuminaireEvent) error
	Keys(ctx context.Context) (map[string]struct{}, error)
	List(ctx context.Context, from, to time.Time, zone string) ([]models.LuminaireEvent, error)
	Count(ctx context.Context) (int, error)
	DeleteBySourceFile(ctx context.Context, fileName string) (int64, error)
}

// ChangeEventRepo is the append-only component-change collection.
type ChangeEventRepo interface {
	BulkUpsert(ctx context.Context, events []models.ChangeEvent) error
	Keys(ctx context.Context) (map[string]struct{}, error)
	List(ctx context.Context, from, to time.Time, zone string) ([]models.ChangeEvent, error)
	Count(ctx context.Context) (int, error)
	DeleteBySourceFile(ctx context.Context, fileName string) (int64, error)
}

// InventoryRepo is the snapshot collection: upserts overwrite by key.
type InventoryRepo interface {
	BulkUpsert(ctx context.Context, items []models.InventoryItem) error
	List(ctx context.Context, municipality string) ([]models.InventoryItem, error)
	Count(ctx context.Context) (int, error)
	DeleteBySourceFile(ctx context.Context, fileName string) (int64, error)
}

// MetadataRepo is the free key-value table. Get returns ok=false when the key
// has never been set.
type MetadataRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Maintenance owns the destructive whole-store operations.
type Maintenance interface {
	Reset(ctx context.Context) error
}

type Repository struct {
	LuminaireEvents LuminaireEventRepo
	ChangeEvents    ChangeEventRepo
	Inventory       InventoryRepo
	Metadata        MetadataRepo
	Maintenance     Maintenance
	Auth            Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		LuminaireEvents: NewLuminaireEventSQLite(db),
		ChangeEvents:    NewChangeEventSQLite(db),
		Inventory:       NewInventorySQLite(db),
		Metadata:        NewMetadataSQLite(db),
		Maintenance:     NewMaintenanceSQLite(db),
		Auth:            NewUserRepository(db),
	}
}
