package models

// Trace is a recorded browsing session: the navigated page and the
// ordered outbound requests it issued (yaml).
type Trace struct {
	Name     string         `yaml:"name"`
	PageURL  string         `yaml:"page_url"`
	Requests []TraceRequest `yaml:"requests"`
}

// TraceRequest is one outbound request in a trace. PageURL overrides the
// trace-level page for requests issued after a navigation.
type TraceRequest struct {
	URL      string `yaml:"url"`
	Resource string `yaml:"resource,omitempty"`
	PageURL  string `yaml:"page_url,omitempty"`
}
