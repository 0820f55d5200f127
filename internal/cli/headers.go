package cli

import (
	"fmt"

	"github.com/headersim/headersim/internal/engine"
	"github.com/headersim/headersim/internal/models"
	"github.com/headersim/headersim/internal/replay"
	"github.com/spf13/cobra"
)

// headersCmd shows the simulated header values for a configuration.
// Display only; nothing is emitted on the wire.
var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Show the simulated CSP and HSTS header values",
	Long: `Prints the header values the enabled policies would emit.

Examples:
  headersim headers --csp strict --hsts basic
  headersim headers --policies policies.yaml`,
	SilenceUsage: true,
	RunE:         runHeaders,
}

var (
	headersPoliciesFlag string
	headersCSPFlag      string
	headersHSTSFlag     string
)

func init() {
	headersCmd.Flags().StringVarP(&headersPoliciesFlag, "policies", "P", "", "Path to the policy configuration file (yaml)")
	headersCmd.Flags().StringVar(&headersCSPFlag, "csp", "", "Enable CSP in this mode: basic, strict, or report-only")
	headersCmd.Flags().StringVar(&headersHSTSFlag, "hsts", "", "Enable HSTS in this mode: basic or strict")
}

// GetHeadersCmd exports the headers command
func GetHeadersCmd() *cobra.Command {
	return headersCmd
}

func runHeaders(cmd *cobra.Command, args []string) error {
	eng := engine.New()

	if headersPoliciesFlag != "" {
		policies, err := replay.LoadPolicies(headersPoliciesFlag)
		if err != nil {
			return err
		}
		if err := replay.Configure(eng, policies); err != nil {
			return err
		}
	}
	if headersCSPFlag != "" {
		if err := eng.EnablePolicy(models.PolicyCSP, models.Mode(headersCSPFlag)); err != nil {
			return err
		}
	}
	if headersHSTSFlag != "" {
		if err := eng.EnablePolicy(models.PolicyHSTS, models.Mode(headersHSTSFlag)); err != nil {
			return err
		}
	}

	printed := false
	if value, ok := eng.CSPHeader(); ok {
		fmt.Printf("Content-Security-Policy: %s\n", value)
		printed = true
	}
	if value, ok := eng.HSTSHeader(); ok {
		fmt.Printf("Strict-Transport-Security: %s\n", value)
		printed = true
	}
	if !printed {
		fmt.Println("No policies enabled; nothing to show.")
	}
	return nil
}
