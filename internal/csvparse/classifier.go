package csvparse

import (
	"strings"

	"alumbrado/internal/models"
)

// Display categories for failure events.
const (
	CategoryFallenPole    = "Columna caída"
	CategoryTheft         = "Hurto"
	CategoryVandalism     = "Vandalismo"
	CategoryUnreachable   = "Inaccesible"
	CategoryBroken        = "Roto"
	CategoryVoltageFault  = "Falla de voltaje"
	CategoryConfiguration = "Error de configuración"
	CategoryHardware      = "Falla de hardware"
	CategoryInformation   = "Información"
)

// Classification is the resolved status/category pair for one event row.
type Classification struct {
	Status   string // models.StatusOperational | models.StatusFailure
	Category string // empty when no mapping or override applied
	Special  bool   // a condition-field override matched
}

// specialRule matches the free-text condition field. Rules are evaluated in
// order, first match wins; a match forces status FAILURE regardless of the
// status code. New special cases are added here, not in Classify.
type specialRule struct {
	match    func(condition string) bool
	category string
}

var specialRules = []specialRule{
	{func(c string) bool { return c == "columna caida" }, CategoryFallenPole},
	{func(c string) bool { return c == "hurto" }, CategoryTheft},
	{func(c string) bool { return strings.HasPrefix(c, "vandalizado") }, CategoryVandalism},
}

// categoryByStatusCode translates the raw status codes the OLC platform
// emits. The table is not exhaustive; an unmapped non-empty code still means
// FAILURE, just without a display category.
var categoryByStatusCode = map[string]string{
	"UNREACHABLE":         CategoryUnreachable,
	"BROKEN":              CategoryBroken,
	"UNSPECIFIC WARNING":  CategoryVoltageFault,
	"CONFIGURATION ERROR": CategoryConfiguration,
	"HARDWARE FAILURE":    CategoryHardware,
	"INFORMATION":         CategoryInformation,
}

// Classify resolves status and category for one row. Stage 1 checks the
// condition field against the special rules; stage 2 translates the status
// code. OPERATIONAL only when the code is empty and no special rule matched.
func Classify(statusCode, condition string) Classification {
	cond := strings.ToLower(strings.TrimSpace(condition))
	for _, r := range specialRules {
		if r.match(cond) {
			return Classification{Status: models.StatusFailure, Category: r.category, Special: true}
		}
	}

	code := strings.TrimSpace(statusCode)
	if code == "" {
		return Classification{Status: models.StatusOperational}
	}
	return Classification{
		Status:   models.StatusFailure,
		Category: categoryByStatusCode[strings.ToUpper(code)],
	}
}
