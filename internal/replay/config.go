package replay

import (
	"fmt"
	"os"

	"github.com/headersim/headersim/internal/engine"
	"github.com/headersim/headersim/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadPolicies parses a policy configuration file (yaml) and validates
// every kind/mode combination before anything is applied.
func LoadPolicies(path string) (map[models.PolicyKind]models.PolicyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var file models.PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	for kind, cfg := range file.Policies {
		if err := models.ValidateMode(kind, modeOrBasic(cfg.Mode)); err != nil {
			return nil, fmt.Errorf("policy file %s: %w", path, err)
		}
		switch kind {
		case models.PolicyCSP, models.PolicyHSTS, models.PolicyCORS:
		default:
			return nil, fmt.Errorf("policy file %s: unknown policy kind %q", path, kind)
		}
	}

	return file.Policies, nil
}

// Configure applies loaded policy configs to an engine.
func Configure(eng *engine.Engine, policies map[models.PolicyKind]models.PolicyConfig) error {
	for kind, cfg := range policies {
		mode := modeOrBasic(cfg.Mode)
		if cfg.Enabled {
			if err := eng.EnablePolicy(kind, mode); err != nil {
				return err
			}
			continue
		}
		if err := eng.SetMode(kind, mode); err != nil {
			return err
		}
	}
	return nil
}

func modeOrBasic(m models.Mode) models.Mode {
	if m == "" {
		return models.ModeBasic
	}
	return m
}
