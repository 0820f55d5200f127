package models

import (
	"fmt"
	"time"
)

// Severity of a single violation.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ViolationKind tags the breach variant.
type ViolationKind string

const (
	ViolationCSP          ViolationKind = "csp-violation"
	ViolationCORSBlocked  ViolationKind = "cors-blocked"
	ViolationMixedContent ViolationKind = "mixed-content"
)

// Violation is one detected policy breach. Immutable once recorded.
type Violation struct {
	Policy    PolicyKind    `json:"policy"`
	Kind      ViolationKind `json:"kind"`
	Message   string        `json:"message"`
	PageURL   string        `json:"pageUrl"`
	TargetURL string        `json:"targetUrl"`
	Timestamp time.Time     `json:"timestamp"`
	Severity  Severity      `json:"severity"`
}

// SummaryKey aggregates violations by policy kind and variant.
type SummaryKey struct {
	Policy PolicyKind
	Kind   ViolationKind
}

// String renders the legacy "{policy}_{kind}" aggregation key.
func (k SummaryKey) String() string {
	return fmt.Sprintf("%s_%s", k.Policy, k.Kind)
}

// BreakLevel is the derived site-breakage risk classification.
type BreakLevel string

const (
	BreakSafe     BreakLevel = "safe"
	BreakPartial  BreakLevel = "partial"
	BreakCritical BreakLevel = "critical"
)

// Decision is the classifier verdict for one request.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionBlock Decision = "block"
)

// ResourceKind is the coarse resource tag the host supplies per request.
type ResourceKind string

const (
	ResourceScript     ResourceKind = "script"
	ResourceStylesheet ResourceKind = "stylesheet"
	ResourceOther      ResourceKind = "other"
)

// ParseResourceKind from trace input. Empty defaults to other.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch ResourceKind(s) {
	case ResourceScript:
		return ResourceScript, nil
	case ResourceStylesheet:
		return ResourceStylesheet, nil
	case ResourceOther:
		return ResourceOther, nil
	case "":
		return ResourceOther, nil
	default:
		return "", fmt.Errorf("unknown resource kind %q (use script, stylesheet, or other)", s)
	}
}
