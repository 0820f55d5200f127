package headers

import (
	"strings"
	"testing"

	"github.com/headersim/headersim/internal/models"
)

func TestCSP(t *testing.T) {
	cases := []struct {
		mode     models.Mode
		contains string
	}{
		{models.ModeBasic, "script-src 'self' 'unsafe-inline'"},
		{models.ModeStrict, "object-src 'none'"},
		{models.ModeReportOnly, "report-uri /csp-report"},
	}
	for _, tc := range cases {
		got := CSP(tc.mode)
		if !strings.Contains(got, tc.contains) {
			t.Errorf("CSP(%s) = %q, want it to contain %q", tc.mode, got, tc.contains)
		}
	}
}

func TestCSPModesDiffer(t *testing.T) {
	if CSP(models.ModeBasic) == CSP(models.ModeStrict) {
		t.Error("basic and strict CSP templates must differ")
	}
	if strings.Contains(CSP(models.ModeStrict), "unsafe-inline") {
		t.Error("strict CSP template must not allow unsafe-inline")
	}
}

func TestHSTS(t *testing.T) {
	if got, want := HSTS(models.ModeBasic), "max-age=31536000"; got != want {
		t.Errorf("HSTS(basic) = %q, want %q", got, want)
	}
	if got, want := HSTS(models.ModeStrict), "max-age=31536000; includeSubDomains; preload"; got != want {
		t.Errorf("HSTS(strict) = %q, want %q", got, want)
	}
}

func TestUnknownModeFallsBackToBasic(t *testing.T) {
	if got, want := CSP(models.Mode("turbo")), CSP(models.ModeBasic); got != want {
		t.Errorf("CSP(unknown) = %q, want basic template", got)
	}
	if got, want := HSTS(models.ModeReportOnly), HSTS(models.ModeBasic); got != want {
		t.Errorf("HSTS without a template = %q, want basic template", got)
	}
}
