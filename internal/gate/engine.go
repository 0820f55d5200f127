// Package gate evaluates CEL assertions over session reports, plus the
// built-in presets.
package gate

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/headersim/headersim/internal/models"
)

// Engine is the gate rule evaluator using CEL
type Engine struct {
	env *cel.Env
}

func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("input", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Engine{env: env}, nil
}

// Evaluate checks rules against a session report
func (e *Engine) Evaluate(config *models.GateConfig, report *models.SessionReport) ([]models.GateResult, error) {
	results := make([]models.GateResult, 0, len(config.Rules))

	// convert report
	input := reportToMap(report)

	for _, rule := range config.Rules {
		result, err := e.evaluateRule(rule, input)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate rule %q: %w", rule.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// evaluateRule
func (e *Engine) evaluateRule(rule models.GateRule, input map[string]interface{}) (models.GateResult, error) {
	// compile
	ast, issues := e.env.Compile(rule.Expr)
	if issues != nil && issues.Err() != nil {
		return models.GateResult{
			RuleName:   rule.Name,
			Passed:     false,
			FailureMsg: fmt.Sprintf("CEL compile error: %v", issues.Err()),
		}, nil
	}

	// program
	prg, err := e.env.Program(ast)
	if err != nil {
		return models.GateResult{
			RuleName:   rule.Name,
			Passed:     false,
			FailureMsg: fmt.Sprintf("CEL program error: %v", err),
		}, nil
	}

	// eval
	out, _, err := prg.Eval(map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return models.GateResult{
			RuleName:   rule.Name,
			Passed:     false,
			FailureMsg: fmt.Sprintf("CEL evaluation error: %v", err),
		}, nil
	}

	// check bool
	passed, ok := out.Value().(bool)
	if !ok {
		return models.GateResult{
			RuleName:   rule.Name,
			Passed:     false,
			FailureMsg: fmt.Sprintf("Rule expression must return boolean, got %T", out.Value()),
		}, nil
	}

	result := models.GateResult{
		RuleName: rule.Name,
		Passed:   passed,
	}
	if !passed {
		result.FailureMsg = rule.FailureMsg
	}

	return result, nil
}

// CompileAndValidate checks every rule expression without evaluating
func (e *Engine) CompileAndValidate(config *models.GateConfig) error {
	var errors []string

	for _, rule := range config.Rules {
		_, issues := e.env.Compile(rule.Expr)
		if issues != nil && issues.Err() != nil {
			errors = append(errors, fmt.Sprintf("rule %q: %v", rule.Name, issues.Err()))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("gate validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
