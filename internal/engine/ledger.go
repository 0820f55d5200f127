package engine

import (
	"sort"

	"github.com/headersim/headersim/internal/models"
)

// Ledger is the append-only violation record plus the monitored and
// blocked URL sets. It is not safe for concurrent use on its own; the
// Engine serializes all access behind its mutex.
type Ledger struct {
	violations []models.Violation
	monitored  map[string]struct{}
	blocked    map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{
		monitored: make(map[string]struct{}),
		blocked:   make(map[string]struct{}),
	}
}

// Record appends a violation. Chronological order is insertion order.
func (l *Ledger) Record(v models.Violation) {
	l.violations = append(l.violations, v)
}

// Monitor notes that a URL was observed, allowed or not.
func (l *Ledger) Monitor(url string) {
	l.monitored[url] = struct{}{}
}

// MarkBlocked notes a blocked URL. Every blocked URL is also monitored.
func (l *Ledger) MarkBlocked(url string) {
	l.monitored[url] = struct{}{}
	l.blocked[url] = struct{}{}
}

// Violations returns a copy of the chronological violation list.
func (l *Ledger) Violations() []models.Violation {
	out := make([]models.Violation, len(l.violations))
	copy(out, l.violations)
	return out
}

// MonitoredURLs sorted for deterministic output.
func (l *Ledger) MonitoredURLs() []string {
	return sortedKeys(l.monitored)
}

// BlockedURLs sorted for deterministic output.
func (l *Ledger) BlockedURLs() []string {
	return sortedKeys(l.blocked)
}

// Summary counts violations by (policy kind, violation kind).
func (l *Ledger) Summary() map[models.SummaryKey]int {
	summary := make(map[models.SummaryKey]int)
	for _, v := range l.violations {
		summary[models.SummaryKey{Policy: v.Policy, Kind: v.Kind}]++
	}
	return summary
}

// Reset clears violations and both URL sets together.
func (l *Ledger) Reset() {
	l.violations = nil
	l.monitored = make(map[string]struct{})
	l.blocked = make(map[string]struct{})
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
