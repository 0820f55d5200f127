package models

import "fmt"

// PolicyKind identifies a simulated security policy.
type PolicyKind string

const (
	PolicyCSP  PolicyKind = "csp"
	PolicyHSTS PolicyKind = "hsts"
	PolicyCORS PolicyKind = "cors"
)

// PolicyKinds in display order (CSP, HSTS, CORS)
func PolicyKinds() []PolicyKind {
	return []PolicyKind{PolicyCSP, PolicyHSTS, PolicyCORS}
}

// Mode is an enforcement mode for a policy.
type Mode string

const (
	ModeBasic      Mode = "basic"
	ModeStrict     Mode = "strict"
	ModeReportOnly Mode = "report-only"
)

// ValidModes per policy kind. Report-only exists for CSP alone.
func ValidModes(kind PolicyKind) []Mode {
	if kind == PolicyCSP {
		return []Mode{ModeBasic, ModeStrict, ModeReportOnly}
	}
	return []Mode{ModeBasic, ModeStrict}
}

// ValidateMode checks a kind/mode combination.
func ValidateMode(kind PolicyKind, mode Mode) error {
	for _, m := range ValidModes(kind) {
		if m == mode {
			return nil
		}
	}
	return fmt.Errorf("mode %q is not valid for policy %q (use one of %v)", mode, kind, ValidModes(kind))
}

// PolicyConfig holds per-kind enforcement state.
// CustomRules is reserved for user-supplied rules and stays empty in
// normal operation; classification never reads it.
type PolicyConfig struct {
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	Mode        Mode     `json:"mode" yaml:"mode"`
	CustomRules []string `json:"customRules,omitempty" yaml:"custom_rules,omitempty"`
}

// PolicyFile is the on-disk policy configuration (yaml).
type PolicyFile struct {
	Policies map[PolicyKind]PolicyConfig `yaml:"policies"`
}
