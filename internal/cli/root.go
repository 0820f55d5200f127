package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/headersim/headersim/internal/observability"
	"github.com/headersim/headersim/internal/observability/logging"
	otelobs "github.com/headersim/headersim/internal/observability/otel"
	"github.com/headersim/headersim/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "headersim",
	Short: "Security header policy simulator",
	Long: `headersim simulates CSP, HSTS, and CORS enforcement against recorded
page traffic, classifies violations, and assesses site breakage.`,
	Version:           version.BuildVersion(),
	PersistentPreRunE: setupContext,
	PersistentPostRun: teardownContext,
}

var (
	logFormatFlag string
	logLevelFlag  string
	logOutputFlag string

	otelEnabledFlag  bool
	otelEndpointFlag string
	otelProtocolFlag string
	otelInsecureFlag bool
	otelSampleFlag   float64
)

// set by setupContext, released in teardownContext
var (
	activeLogger logging.Logger
	otelShutdown func(context.Context) error
)

func setupContext(cmd *cobra.Command, args []string) error {
	ctx := observability.WithOpID(cmd.Context())

	logCfg := logging.Config{
		Format: logFormatFlag,
		Level:  logLevelFlag,
		Output: logOutputFlag,
	}
	log, err := logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	activeLogger = log
	ctx = logging.WithLogger(ctx, log)

	if otelEnabledFlag {
		cfg := otelobs.DefaultConfig()
		cfg.Enabled = true
		cfg.Endpoint = otelEndpointFlag
		cfg.Protocol = otelProtocolFlag
		cfg.Insecure = otelInsecureFlag
		cfg.SampleRatio = otelSampleFlag
		h, initErr := otelobs.Init(ctx, cfg)
		if initErr != nil {
			return fmt.Errorf("failed to initialize tracing: %w", initErr)
		}
		otelShutdown = h.Shutdown
		ctx = otelobs.WithHandle(ctx, h)
	}

	cmd.SetContext(ctx)
	return nil
}

func teardownContext(cmd *cobra.Command, args []string) {
	if otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(ctx)
	}
	if activeLogger != nil {
		_ = activeLogger.Close()
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logFormatFlag, "log-format", "pretty", "Log format: pretty or jsonl")
	pf.StringVar(&logLevelFlag, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&logOutputFlag, "log-output", "stderr", "Log destination: stderr or a file path")
	pf.BoolVar(&otelEnabledFlag, "otel", false, "Enable OpenTelemetry trace export")
	pf.StringVar(&otelEndpointFlag, "otel-endpoint", "", "OTLP endpoint (defaults per protocol)")
	pf.StringVar(&otelProtocolFlag, "otel-protocol", otelobs.ProtocolHTTP, "OTLP protocol: otlphttp or otlpgrpc")
	pf.BoolVar(&otelInsecureFlag, "otel-insecure", false, "Allow insecure OTLP connections")
	pf.Float64Var(&otelSampleFlag, "otel-sample-ratio", 1.0, "Trace sampling ratio (0..1)")

	rootCmd.AddCommand(GetReplayCmd())
	rootCmd.AddCommand(GetHeadersCmd())
	rootCmd.AddCommand(GetReportCmd())
	rootCmd.AddCommand(GetGateCmd())
	rootCmd.AddCommand(GetDiffCmd())
}
