package differ

import (
	"fmt"
	"strings"

	"github.com/headersim/headersim/internal/models"
	"github.com/wI2L/jsondiff"
)

// comparePolicies diffs the configuration sections of two snapshots and
// translates the raw patches to english
func comparePolicies(oldReport, newReport *models.SessionReport) ([]DriftItem, error) {
	patches, err := jsondiff.Compare(oldReport.Policies, newReport.Policies)
	if err != nil {
		return nil, err
	}
	if len(patches) == 0 {
		return nil, nil
	}

	var items []DriftItem
	seen := make(map[string]bool)

	for _, op := range patches {
		item, ok := translateOperation(op)
		if !ok || seen[item.Message] {
			continue
		}
		seen[item.Message] = true
		items = append(items, item)
	}

	return items, nil
}

// translateOperation renders one JSON patch op as a drift item. Paths
// look like "/csp/mode" or "/hsts/enabled".
func translateOperation(op jsondiff.Operation) (DriftItem, bool) {
	parts := strings.Split(strings.TrimPrefix(op.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return DriftItem{}, false
	}
	kind := strings.ToUpper(parts[0])

	var msg string
	switch {
	case len(parts) > 1 && parts[1] == "enabled":
		if enabled, ok := op.Value.(bool); ok && enabled {
			msg = fmt.Sprintf("%s policy enabled", kind)
		} else {
			msg = fmt.Sprintf("%s policy disabled", kind)
		}
	case len(parts) > 1 && parts[1] == "mode":
		msg = fmt.Sprintf("%s mode changed to %v", kind, op.Value)
	case len(parts) > 1 && strings.HasPrefix(parts[1], "customRules"):
		msg = fmt.Sprintf("%s custom rules changed", kind)
	default:
		msg = fmt.Sprintf("%s configuration changed", kind)
	}

	return DriftItem{
		Type:       DriftPolicyChanged,
		Severity:   SeverityModerate,
		Identifier: strings.ToLower(parts[0]),
		Message:    msg,
	}, true
}
