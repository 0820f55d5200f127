// Package differ computes drift between two session reports.
package differ

import (
	"fmt"
	"sort"

	"github.com/headersim/headersim/internal/models"
)

// DriftType indicates what kind of difference was detected
type DriftType string

const (
	DriftBreakLevelChanged  DriftType = "BREAK_LEVEL_CHANGED"
	DriftViolationsAdded    DriftType = "VIOLATIONS_ADDED"
	DriftViolationsResolved DriftType = "VIOLATIONS_RESOLVED"
	DriftURLBlocked         DriftType = "URL_BLOCKED"
	DriftURLUnblocked       DriftType = "URL_UNBLOCKED"
	DriftPolicyChanged      DriftType = "POLICY_CHANGED"
)

// DriftItem details one difference
type DriftItem struct {
	Type       DriftType
	Severity   SeverityLevel
	Identifier string // summary key, URL, or policy kind
	Message    string
}

// Result contains the complete drift between two snapshots
type Result struct {
	HasDrift bool
	Items    []DriftItem
}

// Compare computes the drift from an old snapshot to a new one.
func Compare(oldReport, newReport *models.SessionReport) (*Result, error) {
	result := &Result{
		HasDrift: false,
		Items:    []DriftItem{},
	}

	result.Items = append(result.Items, compareBreakLevel(oldReport, newReport)...)
	result.Items = append(result.Items, compareSummaries(oldReport, newReport)...)
	result.Items = append(result.Items, compareBlocked(oldReport, newReport)...)

	policyItems, err := comparePolicies(oldReport, newReport)
	if err != nil {
		return nil, fmt.Errorf("failed to compare policies: %w", err)
	}
	result.Items = append(result.Items, policyItems...)

	result.HasDrift = len(result.Items) > 0
	return result, nil
}

// compareBreakLevel flags any change in the breakage assessment
func compareBreakLevel(oldReport, newReport *models.SessionReport) []DriftItem {
	if oldReport.BreakLevel == newReport.BreakLevel {
		return nil
	}

	severity := SeveritySafe
	if breakRank(newReport.BreakLevel) > breakRank(oldReport.BreakLevel) {
		severity = SeverityModerate
		if newReport.BreakLevel == models.BreakCritical {
			severity = SeverityCritical
		}
	}

	return []DriftItem{{
		Type:       DriftBreakLevelChanged,
		Severity:   severity,
		Identifier: string(newReport.BreakLevel),
		Message:    fmt.Sprintf("Break level changed: %s → %s", oldReport.BreakLevel, newReport.BreakLevel),
	}}
}

// compareSummaries flags per-kind violation count changes
func compareSummaries(oldReport, newReport *models.SessionReport) []DriftItem {
	var items []DriftItem

	for _, key := range summaryKeys(oldReport, newReport) {
		oldCount := oldReport.Summary[key]
		newCount := newReport.Summary[key]
		switch {
		case newCount > oldCount:
			items = append(items, DriftItem{
				Type:       DriftViolationsAdded,
				Severity:   worstSeverityForKey(newReport.Violations, key),
				Identifier: key,
				Message:    fmt.Sprintf("Violations [%s]: %d → %d", key, oldCount, newCount),
			})
		case newCount < oldCount:
			items = append(items, DriftItem{
				Type:       DriftViolationsResolved,
				Severity:   SeveritySafe,
				Identifier: key,
				Message:    fmt.Sprintf("Violations [%s]: %d → %d", key, oldCount, newCount),
			})
		}
	}

	return items
}

// compareBlocked flags blocked-set changes
func compareBlocked(oldReport, newReport *models.SessionReport) []DriftItem {
	var items []DriftItem

	oldSet := toSet(oldReport.BlockedURLs)
	newSet := toSet(newReport.BlockedURLs)

	for _, url := range newReport.BlockedURLs {
		if _, found := oldSet[url]; !found {
			items = append(items, DriftItem{
				Type:       DriftURLBlocked,
				Severity:   SeverityModerate,
				Identifier: url,
				Message:    fmt.Sprintf("Request now blocked: %s", url),
			})
		}
	}
	for _, url := range oldReport.BlockedURLs {
		if _, found := newSet[url]; !found {
			items = append(items, DriftItem{
				Type:       DriftURLUnblocked,
				Severity:   SeveritySafe,
				Identifier: url,
				Message:    fmt.Sprintf("Request no longer blocked: %s", url),
			})
		}
	}

	return items
}

// worstSeverityForKey maps the worst violation severity under a summary
// key onto a drift severity
func worstSeverityForKey(violations []models.Violation, key string) SeverityLevel {
	worst := SeveritySafe
	for _, v := range violations {
		if (models.SummaryKey{Policy: v.Policy, Kind: v.Kind}).String() != key {
			continue
		}
		var level SeverityLevel
		switch v.Severity {
		case models.SeverityHigh:
			level = SeverityCritical
		case models.SeverityMedium:
			level = SeverityModerate
		default:
			level = SeveritySafe
		}
		if level > worst {
			worst = level
		}
	}
	return worst
}

func breakRank(level models.BreakLevel) int {
	switch level {
	case models.BreakCritical:
		return 2
	case models.BreakPartial:
		return 1
	default:
		return 0
	}
}

// summaryKeys returns the union of both summaries, sorted
func summaryKeys(oldReport, newReport *models.SessionReport) []string {
	seen := make(map[string]struct{})
	for key := range oldReport.Summary {
		seen[key] = struct{}{}
	}
	for key := range newReport.Summary {
		seen[key] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func toSet(urls []string) map[string]struct{} {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return set
}
