package repository

import (
	"context"
	"database/sql"

	"alumbrado/internal/repository/db"
)

// MaintenanceSQLite drops and recreates the whole database. Destructive by
// definition; callers gate it behind explicit confirmation.
type MaintenanceSQLite struct {
	db *sql.DB
}

func NewMaintenanceSQLite(sqlDB *sql.DB) *MaintenanceSQLite {
	return &MaintenanceSQLite{db: sqlDB}
}

var _ Maintenance = (*MaintenanceSQLite)(nil)

func (r *MaintenanceSQLite) Reset(_ context.Context) error {
	return db.Reset(r.db)
}
