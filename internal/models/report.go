package models

import "time"

// SessionReport is the JSON snapshot of one simulation session:
// configuration, ledger contents, and the derived breakage assessment.
// It is the interchange format for the gate and diff commands.
type SessionReport struct {
	Timestamp     time.Time                   `json:"timestamp"`
	PageURL       string                      `json:"pageUrl,omitempty"`
	Policies      map[PolicyKind]PolicyConfig `json:"policies"`
	BreakLevel    BreakLevel                  `json:"breakLevel"`
	Violations    []Violation                 `json:"violations"`
	MonitoredURLs []string                    `json:"monitoredUrls"`
	BlockedURLs   []string                    `json:"blockedUrls"`
	Summary       map[string]int              `json:"summary"`
}

// CriticalCount of high-severity violations.
func (r *SessionReport) CriticalCount() int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == SeverityHigh {
			n++
		}
	}
	return n
}
