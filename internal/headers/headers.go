// Package headers generates the simulated header values for display and
// export. Nothing here is ever emitted on the wire.
package headers

import "github.com/headersim/headersim/internal/models"

// Fixed policy templates keyed by mode.
var cspTemplates = map[models.Mode]string{
	models.ModeBasic:      "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline';",
	models.ModeStrict:     "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; font-src 'self'; object-src 'none'; media-src 'self'; frame-src 'none';",
	models.ModeReportOnly: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; report-uri /csp-report",
}

var hstsTemplates = map[models.Mode]string{
	models.ModeBasic:  "max-age=31536000",
	models.ModeStrict: "max-age=31536000; includeSubDomains; preload",
}

// CSP returns the Content-Security-Policy value for a mode.
// Unknown modes fall back to the basic template.
func CSP(mode models.Mode) string {
	if h, ok := cspTemplates[mode]; ok {
		return h
	}
	return cspTemplates[models.ModeBasic]
}

// HSTS returns the Strict-Transport-Security value for a mode.
func HSTS(mode models.Mode) string {
	if h, ok := hstsTemplates[mode]; ok {
		return h
	}
	return hstsTemplates[models.ModeBasic]
}
