// Package replay runs recorded request traces through the policy engine,
// standing in for the live request pipeline of a hosting browser shell.
package replay

import (
	"fmt"
	"os"

	"github.com/headersim/headersim/internal/engine"
	"github.com/headersim/headersim/internal/models"
	"gopkg.in/yaml.v3"
)

// RequestResult is the per-request outcome of a replay.
type RequestResult struct {
	URL      string
	Resource models.ResourceKind
	PageURL  string
	Decision models.Decision
}

// LoadTrace parses and validates a trace file (yaml).
func LoadTrace(path string) (*models.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	var trace models.Trace
	if err := yaml.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("failed to parse trace %s: %w", path, err)
	}

	if trace.PageURL == "" {
		return nil, fmt.Errorf("trace %s: page_url is required", path)
	}
	for i, req := range trace.Requests {
		if req.URL == "" {
			return nil, fmt.Errorf("trace %s: request %d has no url", path, i)
		}
		if _, err := models.ParseResourceKind(req.Resource); err != nil {
			return nil, fmt.Errorf("trace %s: request %d: %w", path, i, err)
		}
	}

	return &trace, nil
}

// Run classifies every request in order and returns the final session
// snapshot plus the per-request decisions. The engine keeps its ledger
// afterwards; callers reset it between sessions.
func Run(eng *engine.Engine, trace *models.Trace) (*models.SessionReport, []RequestResult, error) {
	results := make([]RequestResult, 0, len(trace.Requests))

	for i, req := range trace.Requests {
		resource, err := models.ParseResourceKind(req.Resource)
		if err != nil {
			return nil, nil, fmt.Errorf("request %d: %w", i, err)
		}
		pageURL := trace.PageURL
		if req.PageURL != "" {
			pageURL = req.PageURL
		}

		decision := eng.Classify(req.URL, resource, pageURL)
		results = append(results, RequestResult{
			URL:      req.URL,
			Resource: resource,
			PageURL:  pageURL,
			Decision: decision,
		})
	}

	snapshot := eng.Snapshot()
	snapshot.PageURL = trace.PageURL
	return &snapshot, results, nil
}
