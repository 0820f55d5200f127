package engine

import (
	"net/url"
	"strings"

	"github.com/headersim/headersim/internal/models"
)

// Cross-origin hosts the CORS check always allows, matched as a
// substring of the request host.
var corsAllowedHosts = []string{
	"fonts.googleapis.com",
	"cdnjs.cloudflare.com",
	"ajax.googleapis.com",
}

// Classify renders the block/allow decision for one outbound request and
// records any violations it detects. Checks run in fixed order: HSTS,
// then CORS, then CSP; each enabled policy flags the request at most
// once, and a block by any of them blocks the request.
//
// The actual fetch or suppression of the real request is the host's job;
// this only decides and does the ledger bookkeeping.
func (e *Engine) Classify(requestURL string, resource models.ResourceKind, pageURL string) models.Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ledger.Monitor(requestURL)

	blocked := false
	if e.checkHSTS(requestURL, pageURL) {
		blocked = true
	}
	if e.checkCORS(requestURL, pageURL) {
		blocked = true
	}
	if e.checkCSP(requestURL, resource, pageURL) {
		blocked = true
	}

	if blocked {
		e.ledger.MarkBlocked(requestURL)
		return models.DecisionBlock
	}
	return models.DecisionAllow
}

// checkHSTS flags plaintext sub-resources on a secure page. The
// violation is recorded in any mode; only strict mode blocks.
func (e *Engine) checkHSTS(requestURL, pageURL string) bool {
	cfg := e.policies[models.PolicyHSTS]
	if !cfg.Enabled {
		return false
	}
	if schemeOf(requestURL) != "http" || schemeOf(pageURL) != "https" {
		return false
	}

	e.ledger.Record(models.Violation{
		Policy:    models.PolicyHSTS,
		Kind:      models.ViolationMixedContent,
		Message:   "Mixed content blocked: " + requestURL,
		PageURL:   pageURL,
		TargetURL: requestURL,
		Timestamp: e.now(),
		Severity:  models.SeverityHigh,
	})
	return cfg.Mode == models.ModeStrict
}

// checkCORS flags cross-origin requests under strict mode, except for
// the fixed CDN allow-list.
func (e *Engine) checkCORS(requestURL, pageURL string) bool {
	cfg := e.policies[models.PolicyCORS]
	if !cfg.Enabled || cfg.Mode != models.ModeStrict {
		return false
	}
	reqHost := hostOf(requestURL)
	if sameHost(reqHost, hostOf(pageURL)) {
		return false
	}
	for _, allowed := range corsAllowedHosts {
		if strings.Contains(reqHost, allowed) {
			return false
		}
	}

	e.ledger.Record(models.Violation{
		Policy:    models.PolicyCORS,
		Kind:      models.ViolationCORSBlocked,
		Message:   "CORS blocked request from " + requestURL,
		PageURL:   pageURL,
		TargetURL: requestURL,
		Timestamp: e.now(),
		Severity:  models.SeverityMedium,
	})
	return true
}

// checkCSP flags cross-origin scripts and stylesheets. Strict and
// report-only modes both record the violation; only strict blocks.
// Other resource kinds are not classified under CSP.
func (e *Engine) checkCSP(requestURL string, resource models.ResourceKind, pageURL string) bool {
	cfg := e.policies[models.PolicyCSP]
	if !cfg.Enabled || cfg.Mode == models.ModeBasic {
		return false
	}

	var directive string
	var severity models.Severity
	switch resource {
	case models.ResourceScript:
		directive = "script-src"
		severity = models.SeverityHigh
	case models.ResourceStylesheet:
		directive = "style-src"
		severity = models.SeverityMedium
	default:
		return false
	}

	if sameHost(hostOf(requestURL), hostOf(pageURL)) {
		return false
	}

	e.ledger.Record(models.Violation{
		Policy:    models.PolicyCSP,
		Kind:      models.ViolationCSP,
		Message:   "CSP violation: " + directive + " blocked " + requestURL,
		PageURL:   pageURL,
		TargetURL: requestURL,
		Timestamp: e.now(),
		Severity:  severity,
	})
	return cfg.Mode == models.ModeStrict
}

// hostOf extracts the host, or "" when the URL does not parse.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// schemeOf extracts the lowercase scheme, or "" when the URL does not parse.
func schemeOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// sameHost fails closed: a host that could not be extracted never
// matches, so malformed URLs classify as cross-origin.
func sameHost(a, b string) bool {
	return a != "" && b != "" && a == b
}
