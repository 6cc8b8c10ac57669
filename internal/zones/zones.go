// Package zones maps raw municipality strings from the concession exports to
// the seven administrative reporting zones.
package zones

import "strings"

// The seven zone values plus the sentinel for municipalities the table does
// not know. Zone B is split into three sub-zones; the parent value still
// exists for municipalities served directly from the B cabecera.
const (
	ZoneA  = "ZONA A"
	ZoneB  = "ZONA B"
	ZoneB1 = "ZONA B1"
	ZoneB2 = "ZONA B2"
	ZoneB3 = "ZONA B3"
	ZoneC  = "ZONA C"
	ZoneD  = "ZONA D"

	ZoneUnknown = "SIN ZONA"
)

// All lists the seven valid zone values, in reporting order.
var All = []string{ZoneA, ZoneB, ZoneB1, ZoneB2, ZoneB3, ZoneC, ZoneD}

// byMunicipality keys are upper-cased, accents preserved, exactly as the
// exports spell them.
var byMunicipality = map[string]string{
	"SAN ISIDRO":    ZoneA,
	"VILLA AURORA":  ZoneA,
	"LAS ACACIAS":   ZoneA,
	"PUERTO ALEGRE": ZoneA,
	"EL MIRADOR":    ZoneA,

	"SANTA LUCÍA":       ZoneB,
	"COLONIA DEL VALLE": ZoneB,
	"RINCÓN GRANDE":     ZoneB,

	"LOS NARANJOS":    ZoneB1,
	"VILLA ESPERANZA": ZoneB1,
	"CAMPO ALTO":      ZoneB1,
	"LA FLORIDA":      ZoneB1,

	"TRES ARROYOS": ZoneB2,
	"PASO DEL REY": ZoneB2,
	"MONTE CLARO":  ZoneB2,
	"BELLA VISTA":  ZoneB2,

	"SAN CAYETANO":      ZoneB3,
	"LAGUNA SECA":       ZoneB3,
	"EL CARMEN":         ZoneB3,
	"VILLA DEL ROSARIO": ZoneB3,

	"GENERAL PAZ":   ZoneC,
	"COSTA AZUL":    ZoneC,
	"ARROYO HONDO":  ZoneC,
	"LOMAS DEL SUR": ZoneC,
	"SAN JERÓNIMO":  ZoneC,

	"PIEDRA BLANCA":  ZoneD,
	"VALLE FÉRTIL":   ZoneD,
	"CERRO COLORADO": ZoneD,
	"LA ESQUINA":     ZoneD,
	"PUEBLO NUEVO":   ZoneD,
}

// Raw municipality values that must never produce a record of any kind.
// Matched case-insensitively before zone resolution.
var excluded = map[string]struct{}{
	"DADO DE BAJA": {},
	"OBRA NUEVA":   {},
	"N/A":          {},
}

// Resolve returns the zone for a raw municipality string, or ZoneUnknown when
// the name is not in the table. It never fails; unknown names are a normal
// condition in the exports.
func Resolve(municipality string) string {
	key := strings.ToUpper(strings.TrimSpace(municipality))
	if z, ok := byMunicipality[key]; ok {
		return z
	}
	return ZoneUnknown
}

// IsExcluded reports whether a raw municipality value is one of the hard
// ingestion-time exclusions (decommissioned, new construction, N/A).
func IsExcluded(municipality string) bool {
	key := strings.ToUpper(strings.TrimSpace(municipality))
	_, ok := excluded[key]
	return ok
}
