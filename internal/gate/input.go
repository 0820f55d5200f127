package gate

import "github.com/headersim/headersim/internal/models"

// reportToMap converts a session report for CEL (deterministic)
func reportToMap(report *models.SessionReport) map[string]interface{} {
	violations := make([]interface{}, len(report.Violations))
	for i, v := range report.Violations {
		violations[i] = violationToMap(v)
	}

	summary := make(map[string]interface{}, len(report.Summary))
	for key, count := range report.Summary {
		summary[key] = count
	}

	policies := make(map[string]interface{}, len(report.Policies))
	for kind, cfg := range report.Policies {
		policies[string(kind)] = map[string]interface{}{
			"enabled": cfg.Enabled,
			"mode":    string(cfg.Mode),
		}
	}

	return map[string]interface{}{
		"page_url":            report.PageURL,
		"break_level":         string(report.BreakLevel),
		"total_violations":    len(report.Violations),
		"critical_violations": report.CriticalCount(),
		"summary":             summary,
		"policies":            policies,
		"violations":          violations,
		"monitored_urls":      stringSliceToInterface(report.MonitoredURLs),
		"blocked_urls":        stringSliceToInterface(report.BlockedURLs),
	}
}

// violationToMap
func violationToMap(v models.Violation) map[string]interface{} {
	return map[string]interface{}{
		"policy":     string(v.Policy),
		"kind":       string(v.Kind),
		"severity":   string(v.Severity),
		"message":    v.Message,
		"page_url":   v.PageURL,
		"target_url": v.TargetURL,
	}
}

// stringSliceToInterface
func stringSliceToInterface(s []string) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = v
	}
	return result
}
