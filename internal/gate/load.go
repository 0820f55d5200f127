package gate

import (
	"fmt"
	"os"

	"github.com/headersim/headersim/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a gate rule file (yaml).
func LoadConfig(path string) (*models.GateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gate rules: %w", err)
	}

	var config models.GateConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse gate rules %s: %w", path, err)
	}

	if len(config.Rules) == 0 {
		return nil, fmt.Errorf("gate rules %s: no rules defined", path)
	}
	for i, rule := range config.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("gate rules %s: rule %d has no name", path, i)
		}
		if rule.Expr == "" {
			return nil, fmt.Errorf("gate rules %s: rule %q has no expr", path, rule.Name)
		}
	}

	return &config, nil
}
