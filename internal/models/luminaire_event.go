package models

import "time"

// Event statuses.
const (
	StatusOperational = "OPERATIONAL"
	StatusFailure     = "FAILURE"
)

// LuminaireEvent is one row of a failure-events export. Identity is the
// server-supplied uniqueEventId; records are never mutated, only deleted in
// bulk by source file or via a full reset.
type LuminaireEvent struct {
	UniqueEventID string    `json:"uniqueEventId"`
	LuminaireID   string    `json:"luminaireId"`
	OlcID         string    `json:"olcId,omitempty"`
	NominalPower  string    `json:"nominalPower,omitempty"`
	EventDate     time.Time `json:"eventDate"`
	Municipality  string    `json:"municipality"`
	Zone          string    `json:"zone"`
	Status        string    `json:"status"` // OPERATIONAL | FAILURE
	Category      string    `json:"category,omitempty"`
	Description   string    `json:"description,omitempty"`
	Lat           *float64  `json:"lat,omitempty"`
	Lon           *float64  `json:"lon,omitempty"`
	MeasuredPower *float64  `json:"measuredPower,omitempty"`
	SourceFile    string    `json:"sourceFile"`
}
