package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/headersim/headersim/internal/models"
)

// Save writes a session snapshot as indented JSON.
func Save(path string, r *models.SessionReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Load reads a session snapshot.
func Load(path string) (*models.SessionReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r models.SessionReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}

// Exists checks for a snapshot on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
