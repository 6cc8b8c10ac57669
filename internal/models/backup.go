package models

// BackupMetadata carries the free-form metadata section of a backup; the one
// key of interest is the sorted list of every file name ever ingested.
type BackupMetadata struct {
	FileNames []string `json:"fileNames"`
}

// Backup is the combined JSON export of the whole store. Date-bearing fields
// serialize as ISO-8601 strings; the round trip is lossless for every field.
type Backup struct {
	Metadata        BackupMetadata   `json:"metadata"`
	LuminaireEvents []LuminaireEvent `json:"luminaireEvents"`
	ChangeEvents    []ChangeEvent    `json:"changeEvents"`
	Inventory       []InventoryItem  `json:"inventory"`
}
