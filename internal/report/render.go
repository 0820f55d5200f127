// Package report renders session reports and stores JSON snapshots.
package report

import (
	"fmt"
	"strings"

	"github.com/headersim/headersim/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderText produces the plain-text session report: active policies,
// break level, and the chronological violation list. Deterministic for a
// given snapshot.
func RenderText(r *models.SessionReport) string {
	var b strings.Builder

	b.WriteString("Header Policy Simulator Report\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.Timestamp.Format(timeLayout))
	if r.PageURL != "" {
		fmt.Fprintf(&b, "URL: %s\n", r.PageURL)
	}
	b.WriteString("\n")

	b.WriteString("Active Policies:\n")
	for _, kind := range models.PolicyKinds() {
		cfg, ok := r.Policies[kind]
		if !ok || !cfg.Enabled {
			continue
		}
		fmt.Fprintf(&b, "  - %s: %s\n", strings.ToUpper(string(kind)), cfg.Mode)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Break Level: %s\n\n", strings.ToUpper(string(r.BreakLevel)))

	b.WriteString("Violations:\n")
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "  %s [%s] %s\n",
			v.Timestamp.Format("15:04:05"),
			strings.ToUpper(string(v.Severity)),
			v.Message)
	}

	return b.String()
}
