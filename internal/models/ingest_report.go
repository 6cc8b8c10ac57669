package models

import "time"

// Import kinds reported by the ingestion pipeline.
const (
	KindLuminaireEvents = "luminaireEvents"
	KindChangeEvents    = "changeEvents"
	KindInventory       = "inventory"
	KindBackup          = "backup"
)

// IngestReport summarizes one processed upload. Malformed rows are skipped
// silently during parsing; the report carries the aggregate counts so the
// caller can surface them.
type IngestReport struct {
	RunID      string    `json:"runId"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
	TotalRows  int       `json:"totalRows"`
	Accepted   int       `json:"accepted"`
	Duplicates int       `json:"duplicates"`
	Skipped    int       `json:"skipped"`
	ImportedAt time.Time `json:"importedAt"`
}

// DatasetSummary is the live snapshot pushed over the WebSocket feed.
type DatasetSummary struct {
	LuminaireEvents int       `json:"luminaireEvents"`
	ChangeEvents    int       `json:"changeEvents"`
	Inventory       int       `json:"inventory"`
	FileNames       []string  `json:"fileNames"`
	GeneratedAt     time.Time `json:"generatedAt"`
}
