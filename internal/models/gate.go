package models

// GateConfig from yaml
type GateConfig struct {
	Name  string     `yaml:"name"`
	Rules []GateRule `yaml:"rules"`
}

// GateRule cel rule over a session report
type GateRule struct {
	Name       string `yaml:"name"`
	Expr       string `yaml:"expr"`
	FailureMsg string `yaml:"failure_msg"`
}

// GateResult eval result
type GateResult struct {
	RuleName   string
	Passed     bool
	FailureMsg string
}
