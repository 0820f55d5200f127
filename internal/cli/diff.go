package cli

import (
	"fmt"
	"os"

	"github.com/headersim/headersim/internal/differ"
	"github.com/headersim/headersim/internal/report"
	"github.com/spf13/cobra"
)

// diffCmd compares two session snapshots
var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Compare two session snapshots",
	Long: `Diff compares two saved session snapshots and reports what changed
in human-readable terms: breakage level, violation counts, blocked
requests, and policy configuration.

Example:
  headersim diff baseline.json current.json --fail-on moderate`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runDiff,
}

var diffFailOnFlag string

func init() {
	diffCmd.Flags().StringVar(&diffFailOnFlag, "fail-on", string(FailOnCritical), "Exit non-zero on drift at this severity: critical, moderate, or info")
}

// GetDiffCmd returns the diff command
func GetDiffCmd() *cobra.Command {
	return diffCmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	failOn, err := ParseFailOnLevel(diffFailOnFlag)
	if err != nil {
		return err
	}

	oldSnapshot, err := report.Load(args[0])
	if err != nil {
		return err
	}
	newSnapshot, err := report.Load(args[1])
	if err != nil {
		return err
	}

	result, err := differ.Compare(oldSnapshot, newSnapshot)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	if !result.HasDrift {
		fmt.Printf("%s✓ No drift detected between sessions%s\n", colorGreen, colorReset)
		return nil
	}

	fmt.Printf("\n%s╔══════════════════════════════════════╗%s\n", colorYellow, colorReset)
	fmt.Printf("%s║         CHANGES DETECTED             ║%s\n", colorYellow, colorReset)
	fmt.Printf("%s╚══════════════════════════════════════╝%s\n\n", colorYellow, colorReset)

	shouldFail := false
	for _, item := range result.Items {
		color := colorForSeverity(item.Severity)
		fmt.Printf("  %s• [%s] %s%s\n", color, differ.SeverityString(item.Severity), item.Message, colorReset)
		if failOn.ShouldFail(item.Severity) {
			shouldFail = true
		}
	}
	fmt.Println()

	if shouldFail {
		os.Exit(1)
	}
	return nil
}
