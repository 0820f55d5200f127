package cli

import (
	"fmt"
	"os"

	"github.com/headersim/headersim/internal/report"
	"github.com/spf13/cobra"
)

// reportCmd renders a session snapshot as the plain-text report
var reportCmd = &cobra.Command{
	Use:   "report <snapshot.json>",
	Short: "Render a session snapshot as a plain-text report",
	Long: `Formats a saved session snapshot as the exportable text report:
active policies, break level, and the chronological violation list.

Example:
  headersim report session.json -o security_report.txt`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runReport,
}

var reportOutputFlag string

func init() {
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "", "Write the report to this path instead of stdout")
}

// GetReportCmd exports the report command
func GetReportCmd() *cobra.Command {
	return reportCmd
}

func runReport(cmd *cobra.Command, args []string) error {
	snapshot, err := report.Load(args[0])
	if err != nil {
		return err
	}

	text := report.RenderText(snapshot)
	if reportOutputFlag == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.WriteFile(reportOutputFlag, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report exported to %s\n", reportOutputFlag)
	return nil
}
