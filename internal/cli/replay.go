package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/headersim/headersim/internal/engine"
	"github.com/headersim/headersim/internal/models"
	"github.com/headersim/headersim/internal/observability"
	"github.com/headersim/headersim/internal/observability/logging"
	otelobs "github.com/headersim/headersim/internal/observability/otel"
	"github.com/headersim/headersim/internal/replay"
	"github.com/headersim/headersim/internal/report"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// replayCmd definition
var replayCmd = &cobra.Command{
	Use:   "replay --trace <file>",
	Short: "Replay a request trace through the policy engine",
	Long: `Classifies every request in a recorded trace under the configured
policies and reports violations, blocked requests, and the breakage level.

Example:
  headersim replay --trace session.yaml --policies policies.yaml -o report.json`,
	SilenceUsage: true,
	RunE:         runReplay,
}

var (
	replayTraceFlag    string
	replayPoliciesFlag string
	replayOutputFlag   string
	replayFormatFlag   string
	replayPrettyFlag   bool
)

func init() {
	replayCmd.Flags().StringVarP(&replayTraceFlag, "trace", "T", "", "Path to the trace file (yaml)")
	replayCmd.Flags().StringVarP(&replayPoliciesFlag, "policies", "P", "", "Path to the policy configuration file (yaml); all policies disabled if omitted")
	replayCmd.Flags().StringVarP(&replayOutputFlag, "output", "o", "", "Write the session snapshot (json) to this path")
	replayCmd.Flags().StringVarP(&replayFormatFlag, "format", "f", "text", "Output format: text or json")
	replayCmd.Flags().BoolVarP(&replayPrettyFlag, "pretty", "p", false, "Pretty print JSON output")
	_ = replayCmd.MarkFlagRequired("trace")
}

// GetReplayCmd exports the replay command
func GetReplayCmd() *cobra.Command {
	return replayCmd
}

func runReplay(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	log := logging.From(ctx)
	start := time.Now()

	// Start OTel span if enabled (before log.Event so trace_id is available)
	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "headersim.replay",
			trace.WithAttributes(
				attribute.String("headersim.op_id", observability.OpID(ctx)),
				attribute.String("headersim.command", "replay"),
				attribute.String("headersim.trace_file", replayTraceFlag),
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

	log.Event(ctx, "replay.start", map[string]any{"trace": replayTraceFlag})

	var resultStatus string
	defer func() {
		log.Event(ctx, "replay.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	sessionTrace, err := replay.LoadTrace(replayTraceFlag)
	if err != nil {
		resultStatus = "fail"
		return err
	}

	eng := engine.New()
	if replayPoliciesFlag != "" {
		policies, loadErr := replay.LoadPolicies(replayPoliciesFlag)
		if loadErr != nil {
			resultStatus = "fail"
			return loadErr
		}
		if cfgErr := replay.Configure(eng, policies); cfgErr != nil {
			resultStatus = "fail"
			return cfgErr
		}
	}

	snapshot, results, err := replay.Run(eng, sessionTrace)
	if err != nil {
		resultStatus = "fail"
		return fmt.Errorf("replay failed: %w", err)
	}

	if replayOutputFlag != "" {
		if saveErr := report.Save(replayOutputFlag, snapshot); saveErr != nil {
			resultStatus = "fail"
			return saveErr
		}
	}

	if replayFormatFlag == "json" {
		var output []byte
		if replayPrettyFlag {
			output, err = json.MarshalIndent(snapshot, "", "  ")
		} else {
			output, err = json.Marshal(snapshot)
		}
		if err != nil {
			resultStatus = "fail"
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		fmt.Println(string(output))
		resultStatus = "success"
		return nil
	}

	printReplaySummary(snapshot, results)
	resultStatus = "success"
	return nil
}

func printReplaySummary(snapshot *models.SessionReport, results []replay.RequestResult) {
	fmt.Printf("Replayed %d requests for %s\n\n", len(results), snapshot.PageURL)

	for _, r := range results {
		if r.Decision == models.DecisionBlock {
			fmt.Printf("  %s[✗ block]%s %-10s %s\n", colorRed, colorReset, r.Resource, r.URL)
		} else {
			fmt.Printf("  %s[✓ allow]%s %-10s %s\n", colorGreen, colorReset, r.Resource, r.URL)
		}
	}

	critical := snapshot.CriticalCount()
	fmt.Printf("\nViolations: %d (%d high severity)\n", len(snapshot.Violations), critical)
	fmt.Printf("Blocked:    %d of %d monitored requests\n", len(snapshot.BlockedURLs), len(snapshot.MonitoredURLs))

	color := colorForBreakLevel(snapshot.BreakLevel)
	fmt.Printf("\n%s%s%s%s\n", colorBold, color, breakLevelText(snapshot.BreakLevel), colorReset)
}
