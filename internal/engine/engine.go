// Package engine implements the security policy simulation core: the
// per-kind policy configuration store, the request classifier, the
// violation ledger, and the breakage assessor.
package engine

import (
	"sync"
	"time"

	"github.com/headersim/headersim/internal/headers"
	"github.com/headersim/headersim/internal/models"
)

// Engine owns the policy configuration and the violation ledger for one
// simulation session. All methods are safe for concurrent use; the host
// may classify from a network callback while a poller reads status.
type Engine struct {
	mu       sync.Mutex
	policies map[models.PolicyKind]*models.PolicyConfig
	ledger   *Ledger

	// Swappable for testing
	now func() time.Time
}

// New creates an engine with every policy disabled in basic mode.
func New() *Engine {
	policies := make(map[models.PolicyKind]*models.PolicyConfig)
	for _, kind := range models.PolicyKinds() {
		policies[kind] = &models.PolicyConfig{Enabled: false, Mode: models.ModeBasic}
	}
	return &Engine{
		policies: policies,
		ledger:   NewLedger(),
		now:      time.Now,
	}
}

// EnablePolicy turns a policy on in the given mode. The mode must be
// legal for the kind; report-only exists for CSP alone.
func (e *Engine) EnablePolicy(kind models.PolicyKind, mode models.Mode) error {
	if err := models.ValidateMode(kind, mode); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.policies[kind]
	cfg.Enabled = true
	cfg.Mode = mode
	return nil
}

// DisablePolicy turns a policy off. The mode is kept so re-enabling
// restores the last selection.
func (e *Engine) DisablePolicy(kind models.PolicyKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.policies[kind].Enabled = false
}

// SetMode changes the enforcement mode without touching enablement.
func (e *Engine) SetMode(kind models.PolicyKind, mode models.Mode) error {
	if err := models.ValidateMode(kind, mode); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.policies[kind].Mode = mode
	return nil
}

// Policy returns a read-only snapshot of one policy configuration.
func (e *Engine) Policy(kind models.PolicyKind) models.PolicyConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.policies[kind]
}

// CSPHeader returns the simulated CSP header value, or false when the
// CSP policy is disabled.
func (e *Engine) CSPHeader() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.policies[models.PolicyCSP]
	if !cfg.Enabled {
		return "", false
	}
	return headers.CSP(cfg.Mode), true
}

// HSTSHeader returns the simulated HSTS header value, or false when the
// HSTS policy is disabled.
func (e *Engine) HSTSHeader() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.policies[models.PolicyHSTS]
	if !cfg.Enabled {
		return "", false
	}
	return headers.HSTS(cfg.Mode), true
}

// AssessBreakage recomputes the breakage level from the current ledger.
func (e *Engine) AssessBreakage() models.BreakLevel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Assess(e.ledger.violations)
}

// ViolationSummary counts violations by (policy kind, violation kind).
func (e *Engine) ViolationSummary() map[models.SummaryKey]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Summary()
}

// Violations returns the chronological violation list.
func (e *Engine) Violations() []models.Violation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Violations()
}

// MonitoredURLs returns every URL observed since the last reset.
func (e *Engine) MonitoredURLs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.MonitoredURLs()
}

// BlockedURLs returns every URL the classifier decided to block.
func (e *Engine) BlockedURLs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.BlockedURLs()
}

// Reset clears the ledger in one critical section. Policy configuration
// is untouched; hosts call this on navigation or user reset.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Reset()
}

// Snapshot captures configuration, ledger, and assessment as a session
// report. Summary keys use the legacy "{policy}_{kind}" string form.
func (e *Engine) Snapshot() models.SessionReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	policies := make(map[models.PolicyKind]models.PolicyConfig, len(e.policies))
	for kind, cfg := range e.policies {
		policies[kind] = *cfg
	}

	summary := make(map[string]int)
	for key, count := range e.ledger.Summary() {
		summary[key.String()] = count
	}

	return models.SessionReport{
		Timestamp:     e.now(),
		Policies:      policies,
		BreakLevel:    Assess(e.ledger.violations),
		Violations:    e.ledger.Violations(),
		MonitoredURLs: e.ledger.MonitoredURLs(),
		BlockedURLs:   e.ledger.BlockedURLs(),
		Summary:       summary,
	}
}
