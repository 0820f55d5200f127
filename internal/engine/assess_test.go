package engine

import (
	"testing"

	"github.com/headersim/headersim/internal/models"
)

func violationsWith(high, medium, low int) []models.Violation {
	var out []models.Violation
	for i := 0; i < high; i++ {
		out = append(out, models.Violation{Severity: models.SeverityHigh})
	}
	for i := 0; i < medium; i++ {
		out = append(out, models.Violation{Severity: models.SeverityMedium})
	}
	for i := 0; i < low; i++ {
		out = append(out, models.Violation{Severity: models.SeverityLow})
	}
	return out
}

func TestAssess(t *testing.T) {
	cases := []struct {
		name   string
		high   int
		medium int
		low    int
		want   models.BreakLevel
	}{
		{"empty", 0, 0, 0, models.BreakSafe},
		{"one medium", 0, 1, 0, models.BreakSafe},
		{"two mediums", 0, 2, 0, models.BreakSafe},
		{"one high", 1, 0, 0, models.BreakPartial},
		{"three total no highs", 0, 2, 1, models.BreakPartial},
		{"two highs", 2, 0, 0, models.BreakPartial},
		{"three highs", 3, 0, 0, models.BreakCritical},
		{"ten total no highs", 0, 10, 0, models.BreakCritical},
		{"nine total two highs", 2, 7, 0, models.BreakPartial},
		{"ten total two highs", 2, 8, 0, models.BreakCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Assess(violationsWith(tc.high, tc.medium, tc.low))
			if got != tc.want {
				t.Errorf("Assess(%d high, %d medium, %d low) = %q, want %q",
					tc.high, tc.medium, tc.low, got, tc.want)
			}
		})
	}
}

// Adding violations never lowers the assessed level.
func TestAssessMonotonic(t *testing.T) {
	rank := map[models.BreakLevel]int{
		models.BreakSafe:     0,
		models.BreakPartial:  1,
		models.BreakCritical: 2,
	}

	severities := []models.Severity{
		models.SeverityMedium,
		models.SeverityHigh,
		models.SeverityLow,
		models.SeverityHigh,
		models.SeverityMedium,
		models.SeverityHigh,
		models.SeverityLow,
	}

	var violations []models.Violation
	prev := Assess(violations)
	for _, sev := range severities {
		violations = append(violations, models.Violation{Severity: sev})
		next := Assess(violations)
		if rank[next] < rank[prev] {
			t.Fatalf("level regressed from %q to %q at %d violations", prev, next, len(violations))
		}
		prev = next
	}
	if prev != models.BreakCritical {
		t.Errorf("final level = %q with three highs recorded, want critical", prev)
	}
}
