package models

import "time"

// ChangeEvent records a component replacement. The source export carries no
// natural key, so UniqueID is composed from pole id, removal timestamp and
// component name (see NewChangeEventID).
type ChangeEvent struct {
	UniqueID       string    `json:"uniqueId"`
	PoleID         string    `json:"poleId"`
	StreetlightID  string    `json:"streetlightId,omitempty"`
	CabinetID      string    `json:"cabinetId,omitempty"`
	RemovedAt      time.Time `json:"fechaRetiro"`
	Condition      string    `json:"condition,omitempty"`
	OperatingHours float64   `json:"operatingHours"`
	SwitchCount    int       `json:"switchCount"`
	Municipality   string    `json:"municipality"`
	Zone           string    `json:"zone"`
	Lat            *float64  `json:"lat,omitempty"`
	Lon            *float64  `json:"lon,omitempty"`
	Component      string    `json:"component,omitempty"`
	Designation    string    `json:"designation,omitempty"`
	SourceFile     string    `json:"sourceFile"`
}

// NewChangeEventID builds the composite identity for a change event.
func NewChangeEventID(poleID string, removedAt time.Time, component string) string {
	return poleID + "|" + removedAt.UTC().Format("2006-01-02T15:04") + "|" + component
}
