package models

import "time"

// InventoryItem is one streetlight of an inventory snapshot. Unlike the two
// event types, inventory is not append-only: a later import with the same
// external id overwrites the prior record (last write wins).
type InventoryItem struct {
	StreetlightID   string     `json:"streetlightIdExterno"`
	Municipality    string     `json:"municipio"`
	Zone            string     `json:"zone"`
	Lat             *float64   `json:"lat,omitempty"`
	Lon             *float64   `json:"lon,omitempty"`
	AccountNumber   string     `json:"accountNumber,omitempty"`
	Situation       string     `json:"situacion,omitempty"`
	Locality        string     `json:"locality,omitempty"`
	InstalledAt     *time.Time `json:"installedAt,omitempty"`
	Marked          string     `json:"marked,omitempty"`
	Status          string     `json:"status,omitempty"`
	InauguratedAt   *time.Time `json:"inauguratedAt,omitempty"`
	OlcAddress      string     `json:"olcAddress,omitempty"`
	DimmingCalendar string     `json:"dimmingCalendar,omitempty"`
	LastReportAt    *time.Time `json:"lastReportAt,omitempty"`
	OlcID           *int64     `json:"olcId,omitempty"`
	LuminaireID     string     `json:"luminaireId,omitempty"`
	OperatingHours  *float64   `json:"operatingHours,omitempty"`
	SwitchCount     *int64     `json:"switchCount,omitempty"`
	CabinetID       string     `json:"cabinetId,omitempty"`
	CabinetLat      *float64   `json:"cabinetLat,omitempty"`
	CabinetLon      *float64   `json:"cabinetLon,omitempty"`
	NominalPower    string     `json:"nominalPower,omitempty"`
	Designation     string     `json:"designation,omitempty"`
	SourceFile      string     `json:"sourceFile"`
}
