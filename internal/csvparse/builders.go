package csvparse

import (
	"time"

	"alumbrado/internal/models"
	"alumbrado/internal/zones"
)

// SkipReason tags why a row was rejected. SkipNone means the row was
// accepted. Rejection is local recovery, not an error: the pipeline counts
// skips and moves on.
type SkipReason string

const (
	SkipNone                 SkipReason = ""
	SkipShortRow             SkipReason = "short row"
	SkipBadDate              SkipReason = "unparseable date"
	SkipMissingID            SkipReason = "missing identity"
	SkipExcludedMunicipality SkipReason = "excluded municipality"
)

// BuildLuminaireEvent builds a failure event from one tokenized row. Either
// the record is fully populated or the row is skipped; no partial records.
func BuildLuminaireEvent(fields []string, sourceFile string) (models.LuminaireEvent, SkipReason) {
	if len(fields) < failureMinColumns {
		return models.LuminaireEvent{}, SkipShortRow
	}
	if zones.IsExcluded(fields[failureColMunicipality]) {
		return models.LuminaireEvent{}, SkipExcludedMunicipality
	}
	if fields[failureColEventID] == "" {
		return models.LuminaireEvent{}, SkipMissingID
	}
	eventDate, ok := ParseDateTime(fields[failureColDateTime])
	if !ok {
		return models.LuminaireEvent{}, SkipBadDate
	}

	cls := Classify(fields[failureColStatusCode], fields[failureColCondition])
	municipality := fields[failureColMunicipality]

	return models.LuminaireEvent{
		UniqueEventID: fields[failureColEventID],
		LuminaireID:   fields[failureColLuminaireID],
		OlcID:         fields[failureColOlcID],
		// The export carries one power column; it is kept verbatim as the
		// nominal rating and, when numeric, doubles as the measured value.
		NominalPower:  fields[failureColPower],
		EventDate:     eventDate,
		Municipality:  municipality,
		Zone:          zones.Resolve(municipality),
		Status:        cls.Status,
		Category:      cls.Category,
		Description:   fields[failureColDescription],
		Lat:           decimalPtr(fields[failureColLat]),
		Lon:           decimalPtr(fields[failureColLon]),
		MeasuredPower: decimalPtr(fields[failureColPower]),
		SourceFile:    sourceFile,
	}, SkipNone
}

// BuildChangeEvent builds a component-change record. Operating hours and
// switch count are counters, not measurements: absent parses to 0 there, by
// contract.
func BuildChangeEvent(fields []string, sourceFile string) (models.ChangeEvent, SkipReason) {
	if len(fields) < changeMinColumns {
		return models.ChangeEvent{}, SkipShortRow
	}
	if zones.IsExcluded(fields[changeColMunicipality]) {
		return models.ChangeEvent{}, SkipExcludedMunicipality
	}
	removedAt, ok := ParseDateTime(fields[changeColDateTime])
	if !ok {
		return models.ChangeEvent{}, SkipBadDate
	}
	poleID := fields[changeColPoleID]
	if poleID == "" {
		return models.ChangeEvent{}, SkipMissingID
	}

	hours, _ := ParseDecimal(fields[changeColOperatingHours])
	switches, _ := ParseInteger(fields[changeColSwitchCount])
	municipality := fields[changeColMunicipality]
	component := fields[changeColComponent]

	return models.ChangeEvent{
		UniqueID:       models.NewChangeEventID(poleID, removedAt, component),
		PoleID:         poleID,
		StreetlightID:  fields[changeColStreetlightID],
		CabinetID:      fields[changeColCabinetID],
		RemovedAt:      removedAt,
		Condition:      fields[changeColCondition],
		OperatingHours: hours,
		SwitchCount:    int(switches),
		Municipality:   municipality,
		Zone:           zones.Resolve(municipality),
		Lat:            decimalPtr(fields[changeColLat]),
		Lon:            decimalPtr(fields[changeColLon]),
		Component:      component,
		Designation:    fields[changeColDesignation],
		SourceFile:     sourceFile,
	}, SkipNone
}

// BuildInventoryItem builds one snapshot row. Date columns here are
// best-effort: a bad install or report date leaves the field nil instead of
// skipping the row, since the streetlight id is the payload that matters.
func BuildInventoryItem(fields []string, sourceFile string) (models.InventoryItem, SkipReason) {
	if len(fields) < inventoryMinColumns {
		return models.InventoryItem{}, SkipShortRow
	}
	if zones.IsExcluded(fields[inventoryColMunicipality]) {
		return models.InventoryItem{}, SkipExcludedMunicipality
	}
	id := fields[inventoryColStreetlightID]
	if id == "" {
		return models.InventoryItem{}, SkipMissingID
	}

	municipality := fields[inventoryColMunicipality]

	return models.InventoryItem{
		StreetlightID:   id,
		Municipality:    municipality,
		Zone:            zones.Resolve(municipality),
		Lat:             decimalPtr(fields[inventoryColLat]),
		Lon:             decimalPtr(fields[inventoryColLon]),
		AccountNumber:   fields[inventoryColAccountNumber],
		Situation:       fields[inventoryColSituation],
		Locality:        fields[inventoryColLocality],
		InstalledAt:     dateTimePtr(fields[inventoryColInstallDate]),
		Marked:          fields[inventoryColMarked],
		Status:          fields[inventoryColStatus],
		InauguratedAt:   dateTimePtr(fields[inventoryColInauguration]),
		OlcAddress:      fields[inventoryColOlcAddress],
		DimmingCalendar: fields[inventoryColDimmingCalendar],
		LastReportAt:    dateTimePtr(fields[inventoryColLastReport]),
		OlcID:           integerPtr(fields[inventoryColOlcID]),
		LuminaireID:     fields[inventoryColLuminaireID],
		OperatingHours:  decimalPtr(fields[inventoryColOperatingHours]),
		SwitchCount:     integerPtr(fields[inventoryColSwitchCount]),
		CabinetID:       fields[inventoryColCabinetID],
		CabinetLat:      decimalPtr(fields[inventoryColCabinetLat]),
		CabinetLon:      decimalPtr(fields[inventoryColCabinetLon]),
		NominalPower:    fields[inventoryColNominalPower],
		Designation:     fields[inventoryColDesignation],
		SourceFile:      sourceFile,
	}, SkipNone
}

// dateTimePtr parses an optional date column; nil when absent or malformed.
func dateTimePtr(s string) *time.Time {
	if t, ok := ParseDateTime(s); ok {
		return &t
	}
	return nil
}
