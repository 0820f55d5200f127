package cli

import (
	"fmt"
	"strings"

	"github.com/headersim/headersim/internal/differ"
	"github.com/headersim/headersim/internal/models"
)

// ANSI color codes
const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// FailOnLevel threshold for failure
type FailOnLevel string

const (
	FailOnCritical FailOnLevel = "critical"
	FailOnModerate FailOnLevel = "moderate"
	FailOnInfo     FailOnLevel = "info"
)

// ParseFailOnLevel from string
func ParseFailOnLevel(s string) (FailOnLevel, error) {
	switch strings.ToLower(s) {
	case "critical":
		return FailOnCritical, nil
	case "moderate":
		return FailOnModerate, nil
	case "info":
		return FailOnInfo, nil
	default:
		return "", fmt.Errorf("invalid fail-on level: %s (use critical, moderate, or info)", s)
	}
}

// ShouldFail checks limits
func (f FailOnLevel) ShouldFail(severity differ.SeverityLevel) bool {
	switch f {
	case FailOnCritical:
		return severity == differ.SeverityCritical
	case FailOnModerate:
		return severity >= differ.SeverityModerate
	case FailOnInfo:
		return true // all severities fail
	default:
		return severity == differ.SeverityCritical
	}
}

func colorForSeverity(severity differ.SeverityLevel) string {
	switch severity {
	case differ.SeverityCritical:
		return colorRed
	case differ.SeverityModerate:
		return colorYellow
	default:
		return colorGreen
	}
}

func colorForBreakLevel(level models.BreakLevel) string {
	switch level {
	case models.BreakCritical:
		return colorRed
	case models.BreakPartial:
		return colorYellow
	default:
		return colorGreen
	}
}

func breakLevelText(level models.BreakLevel) string {
	switch level {
	case models.BreakCritical:
		return "CRITICAL BREAK - Site functionality severely impacted"
	case models.BreakPartial:
		return "PARTIAL BREAK - Some functionality may be affected"
	default:
		return "SAFE - No critical policy violations"
	}
}
