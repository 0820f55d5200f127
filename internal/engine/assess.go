package engine

import "github.com/headersim/headersim/internal/models"

// Breakage thresholds.
const (
	criticalHighCount  = 3
	criticalTotalCount = 10
	partialHighCount   = 1
	partialTotalCount  = 3
)

// Assess derives the site-breakage level from a violation list.
// Pure; callers re-evaluate whenever the ledger changes.
func Assess(violations []models.Violation) models.BreakLevel {
	if len(violations) == 0 {
		return models.BreakSafe
	}

	critical := 0
	for _, v := range violations {
		if v.Severity == models.SeverityHigh {
			critical++
		}
	}
	total := len(violations)

	switch {
	case critical >= criticalHighCount || total >= criticalTotalCount:
		return models.BreakCritical
	case critical >= partialHighCount || total >= partialTotalCount:
		return models.BreakPartial
	default:
		return models.BreakSafe
	}
}
