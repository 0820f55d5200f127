package engine

import (
	"reflect"
	"testing"

	"github.com/headersim/headersim/internal/models"
)

func TestClassifyDisabledPoliciesOnlyMonitor(t *testing.T) {
	eng := newTestEngine()

	urls := []string{
		"http://plain.example.com/a.js",
		"https://other.example.net/style.css",
		"https://site.com/self.js",
	}
	for _, u := range urls {
		if d := eng.Classify(u, models.ResourceScript, "https://site.com"); d != models.DecisionAllow {
			t.Errorf("Classify(%q) = %q with all policies off, want allow", u, d)
		}
	}

	if got := eng.Violations(); len(got) != 0 {
		t.Errorf("violations = %d, want 0", len(got))
	}
	if got := eng.BlockedURLs(); len(got) != 0 {
		t.Errorf("blocked = %v, want empty", got)
	}
	if got := len(eng.MonitoredURLs()); got != len(urls) {
		t.Errorf("monitored %d URLs, want %d", got, len(urls))
	}
}

func TestClassifyMonitoringDeduplicates(t *testing.T) {
	eng := newTestEngine()
	for i := 0; i < 3; i++ {
		eng.Classify("https://cdn.example.com/a.js", models.ResourceScript, "https://site.com")
	}

	want := []string{"https://cdn.example.com/a.js"}
	if got := eng.MonitoredURLs(); !reflect.DeepEqual(got, want) {
		t.Errorf("monitored = %v, want %v", got, want)
	}
}

func TestClassifyBlockedSubsetOfMonitored(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCSP, models.ModeStrict); err != nil {
		t.Fatal(err)
	}

	eng.Classify("https://cdn.example.com/a.js", models.ResourceScript, "https://site.com")
	eng.Classify("https://site.com/b.js", models.ResourceScript, "https://site.com")

	monitored := make(map[string]bool)
	for _, u := range eng.MonitoredURLs() {
		monitored[u] = true
	}
	for _, u := range eng.BlockedURLs() {
		if !monitored[u] {
			t.Errorf("blocked URL %q not in monitored set", u)
		}
	}
	if got := eng.BlockedURLs(); len(got) != 1 || got[0] != "https://cdn.example.com/a.js" {
		t.Errorf("blocked = %v, want the cross-origin script alone", got)
	}
}

func TestClassifyBlockImpliesViolation(t *testing.T) {
	eng := newTestEngine()
	for _, kind := range models.PolicyKinds() {
		if err := eng.EnablePolicy(kind, models.ModeStrict); err != nil {
			t.Fatal(err)
		}
	}

	requests := []struct {
		url      string
		resource models.ResourceKind
	}{
		{"http://plain.example.com/px.gif", models.ResourceOther},
		{"https://tracker.example.net/beacon", models.ResourceOther},
		{"https://cdn.example.com/lib.js", models.ResourceScript},
		{"https://site.com/own.css", models.ResourceStylesheet},
	}

	for _, req := range requests {
		before := len(eng.Violations())
		decision := eng.Classify(req.url, req.resource, "https://site.com")
		after := len(eng.Violations())
		if decision == models.DecisionBlock && after == before {
			t.Errorf("Classify(%q) blocked without recording a violation", req.url)
		}
	}
}

func TestClassifyReportOnlyCSPRecordsWithoutBlocking(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCSP, models.ModeReportOnly); err != nil {
		t.Fatal(err)
	}

	decision := eng.Classify("https://cdn.example.com/lib.js", models.ResourceScript, "https://site.com")
	if decision != models.DecisionAllow {
		t.Errorf("decision = %q in report-only mode, want allow", decision)
	}
	if got := eng.Violations(); len(got) != 1 {
		t.Fatalf("violations = %d, want 1 recorded in report-only mode", len(got))
	}
	if got := eng.BlockedURLs(); len(got) != 0 {
		t.Errorf("blocked = %v, want empty in report-only mode", got)
	}
}

func TestClassifyBasicHSTSRecordsWithoutBlocking(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyHSTS, models.ModeBasic); err != nil {
		t.Fatal(err)
	}

	decision := eng.Classify("http://ads.example.com/px.gif", models.ResourceOther, "https://site.com")
	if decision != models.DecisionAllow {
		t.Errorf("decision = %q in basic mode, want allow", decision)
	}
	if got := eng.Violations(); len(got) != 1 {
		t.Errorf("violations = %d, want 1", len(got))
	}
}

func TestClassifyBasicCORSIsInert(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCORS, models.ModeBasic); err != nil {
		t.Fatal(err)
	}

	decision := eng.Classify("https://tracker.example.net/beacon", models.ResourceOther, "https://site.com")
	if decision != models.DecisionAllow {
		t.Errorf("decision = %q, want allow under basic CORS", decision)
	}
	if got := eng.Violations(); len(got) != 0 {
		t.Errorf("violations = %d, want 0 under basic CORS", len(got))
	}
}

func TestClassifyCSPSkipsOtherResources(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCSP, models.ModeStrict); err != nil {
		t.Fatal(err)
	}

	decision := eng.Classify("https://cdn.example.com/font.woff2", models.ResourceOther, "https://site.com")
	if decision != models.DecisionAllow {
		t.Errorf("decision = %q for non-script resource, want allow", decision)
	}
	if got := eng.Violations(); len(got) != 0 {
		t.Errorf("violations = %d, want 0", len(got))
	}
}

func TestClassifyCSPStylesheetSeverity(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCSP, models.ModeStrict); err != nil {
		t.Fatal(err)
	}

	eng.Classify("https://cdn.example.com/theme.css", models.ResourceStylesheet, "https://site.com")
	violations := eng.Violations()
	if len(violations) != 1 {
		t.Fatalf("violations = %d, want 1", len(violations))
	}
	v := violations[0]
	if v.Severity != models.SeverityMedium {
		t.Errorf("stylesheet severity = %q, want medium", v.Severity)
	}
	if want := "CSP violation: style-src blocked https://cdn.example.com/theme.css"; v.Message != want {
		t.Errorf("message = %q, want %q", v.Message, want)
	}
}

func TestClassifyMalformedURLFailsClosed(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCSP, models.ModeStrict); err != nil {
		t.Fatal(err)
	}

	// A URL with no extractable host never matches the page host, so the
	// strict policy treats it as cross-origin and blocks.
	decision := eng.Classify("::not a url::", models.ResourceScript, "https://site.com")
	if decision != models.DecisionBlock {
		t.Errorf("decision = %q for unparseable script URL, want block", decision)
	}
}

func TestClassifyCORSSubstringAllowList(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCORS, models.ModeStrict); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		url  string
		want models.Decision
	}{
		{"https://fonts.googleapis.com/css2?family=Inter", models.DecisionAllow},
		{"https://cdnjs.cloudflare.com/ajax/libs/d3/7.8.5/d3.min.js", models.DecisionAllow},
		{"https://ajax.googleapis.com/ajax/libs/jquery/3.7.1/jquery.min.js", models.DecisionAllow},
		{"https://evil.example.net/x", models.DecisionBlock},
	}
	for _, tc := range cases {
		if got := eng.Classify(tc.url, models.ResourceOther, "https://site.com"); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestResetClearsLedgerKeepsPolicies(t *testing.T) {
	eng := newTestEngine()
	if err := eng.EnablePolicy(models.PolicyCSP, models.ModeStrict); err != nil {
		t.Fatal(err)
	}
	eng.Classify("https://cdn.example.com/lib.js", models.ResourceScript, "https://site.com")

	eng.Reset()

	if got := eng.Violations(); len(got) != 0 {
		t.Errorf("violations = %d after reset, want 0", len(got))
	}
	if got := eng.MonitoredURLs(); len(got) != 0 {
		t.Errorf("monitored = %v after reset, want empty", got)
	}
	if got := eng.BlockedURLs(); len(got) != 0 {
		t.Errorf("blocked = %v after reset, want empty", got)
	}
	if level := eng.AssessBreakage(); level != models.BreakSafe {
		t.Errorf("breakage = %q after reset, want safe", level)
	}
	if cfg := eng.Policy(models.PolicyCSP); !cfg.Enabled || cfg.Mode != models.ModeStrict {
		t.Errorf("policy config = %+v after reset, want strict CSP untouched", cfg)
	}
}
