package csvparse

// Positional column contracts, one block per CSV flavor. Column shifts in a
// new export version are a one-line diff here instead of a silent mis-map in
// a builder.

// Failure-events export.
const (
	failureColMunicipality = 0
	failureColPower        = 2
	failureColOlcID        = 3
	failureColLuminaireID  = 4
	failureColLat          = 5
	failureColLon          = 6
	failureColCondition    = 8
	failureColStatusCode   = 10
	failureColEventID      = 11
	failureColDescription  = 12
	failureColDateTime     = 13

	failureMinColumns = 14
)

// Change-events export.
const (
	changeColDateTime       = 0
	changeColCondition      = 1
	changeColPoleID         = 2
	changeColOperatingHours = 3
	changeColSwitchCount    = 4
	changeColMunicipality   = 5
	changeColLat            = 6
	changeColLon            = 7
	changeColStreetlightID  = 8
	changeColComponent      = 9
	changeColDesignation    = 10
	changeColCabinetID      = 11

	changeMinColumns = 12
)

// Inventory export.
const (
	inventoryColMunicipality    = 0
	inventoryColStreetlightID   = 1
	inventoryColLat             = 2
	inventoryColLon             = 3
	inventoryColAccountNumber   = 4
	inventoryColSituation       = 5
	inventoryColLocality        = 6
	inventoryColInstallDate     = 7
	inventoryColMarked          = 8
	inventoryColStatus          = 9
	inventoryColInauguration    = 10
	inventoryColOlcAddress      = 11
	inventoryColDimmingCalendar = 12
	inventoryColLastReport      = 13
	inventoryColOlcID           = 15
	inventoryColLuminaireID     = 16
	inventoryColOperatingHours  = 17
	inventoryColSwitchCount     = 18
	inventoryColCabinetID       = 19
	inventoryColCabinetLat      = 20
	inventoryColCabinetLon      = 21
	inventoryColNominalPower    = 22
	inventoryColDesignation     = 23

	inventoryMinColumns = 24
)
