package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/headersim/headersim/internal/gate"
	"github.com/headersim/headersim/internal/models"
	"github.com/headersim/headersim/internal/observability"
	"github.com/headersim/headersim/internal/observability/logging"
	otelobs "github.com/headersim/headersim/internal/observability/otel"
	"github.com/headersim/headersim/internal/report"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default gate when no rule file or preset is provided
var defaultGate = models.GateConfig{
	Name: "Default Session Gate",
	Rules: []models.GateRule{
		{
			Name:       "No Critical Breakage",
			Expr:       `input.break_level != "critical"`,
			FailureMsg: "Critical site breakage detected!",
		},
	},
}

// gateCmd evaluates CEL rules against a session snapshot
var gateCmd = &cobra.Command{
	Use:   "gate <snapshot.json>",
	Short: "Evaluate gate rules against a session snapshot",
	Long: `Evaluates YAML gate rules (CEL expressions) against a saved session
snapshot. Exits non-zero when any rule fails, for CI use.

Examples:
  headersim gate session.json --rules gate.yaml
  headersim gate session.json --preset strict`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runGate,
}

var (
	gateRulesFlag  string
	gatePresetFlag string
)

func init() {
	gateCmd.Flags().StringVarP(&gateRulesFlag, "rules", "R", "", "Path to gate rule file (yaml); uses the default gate if not provided")
	gateCmd.Flags().StringVar(&gatePresetFlag, "preset", "", "Use a built-in gate preset: baseline or strict")
}

// GetGateCmd exports the gate command
func GetGateCmd() *cobra.Command {
	return gateCmd
}

func runGate(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	log := logging.From(ctx)
	start := time.Now()

	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "headersim.gate",
			trace.WithAttributes(
				attribute.String("headersim.op_id", observability.OpID(ctx)),
				attribute.String("headersim.command", "gate"),
				attribute.String("headersim.preset", gatePresetFlag),
			))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed")
			} else {
				span.SetStatus(codes.Ok, "success")
			}
			span.End()
		}()
	}

	log.Event(ctx, "gate.start", map[string]any{"snapshot": args[0]})

	var resultStatus string
	defer func() {
		log.Event(ctx, "gate.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	config, err := resolveGateConfig()
	if err != nil {
		resultStatus = "fail"
		return err
	}

	snapshot, err := report.Load(args[0])
	if err != nil {
		resultStatus = "fail"
		return err
	}

	eng, err := gate.NewEngine()
	if err != nil {
		resultStatus = "fail"
		return err
	}
	if err = eng.CompileAndValidate(config); err != nil {
		resultStatus = "fail"
		return err
	}

	results, err := eng.Evaluate(config, snapshot)
	if err != nil {
		resultStatus = "fail"
		return fmt.Errorf("gate evaluation failed: %w", err)
	}

	fmt.Printf("%s%s%s\n\n", colorBold, config.Name, colorReset)
	failed := 0
	for _, result := range results {
		if result.Passed {
			fmt.Printf("  %s✓ %s%s\n", colorGreen, result.RuleName, colorReset)
			continue
		}
		failed++
		fmt.Printf("  %s✗ %s: %s%s\n", colorRed, result.RuleName, result.FailureMsg, colorReset)
	}

	if failed > 0 {
		fmt.Printf("\n%s%d of %d rules failed%s\n", colorRed, failed, len(results), colorReset)
		resultStatus = "fail"
		os.Exit(1)
	}

	fmt.Printf("\n%sAll %d rules passed%s\n", colorGreen, len(results), colorReset)
	resultStatus = "success"
	return nil
}

// resolveGateConfig picks preset, rule file, or the default gate
func resolveGateConfig() (*models.GateConfig, error) {
	if gatePresetFlag != "" && gateRulesFlag != "" {
		return nil, fmt.Errorf("use either --preset or --rules, not both")
	}
	if gatePresetFlag != "" {
		preset := gate.GetPreset(gatePresetFlag)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", gatePresetFlag, gate.ListPresetNames())
		}
		return preset, nil
	}
	if gateRulesFlag != "" {
		return gate.LoadConfig(gateRulesFlag)
	}
	return &defaultGate, nil
}
