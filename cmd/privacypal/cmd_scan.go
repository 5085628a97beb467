package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"privacypal/internal/config"
	"privacypal/internal/feed"
	"privacypal/internal/perception"
	"privacypal/internal/pipeline"
	"privacypal/internal/ux"
)

// newOracle builds the LLM client for a run. Tests replace it.
var newOracle = func(ctx context.Context, cfg *config.Config) (perception.LLMClient, error) {
	return perception.NewClient(ctx, cfg)
}

type scanFlags struct {
	feedPath    string
	parallel    int
	pace        time.Duration
	model       string
	reportPath  string
	showSecrets bool
}

func newScanCmd() *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the full scan, adjudication and coaching pipeline over a feed",
		Example: `  privacypal scan --feed mock_data.json
  privacypal scan --feed feed.yaml --parallel 4 --pace 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.feedPath, "feed", "f", "mock_data.json", "Feed file (JSON or YAML)")
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", 1, "Concurrent findings per message (overrides config)")
	cmd.Flags().DurationVar(&f.pace, "pace", 0, "Delay between messages, e.g. 12s (overrides config)")
	cmd.Flags().StringVar(&f.model, "model", "", "Override the oracle model")
	cmd.Flags().StringVar(&f.reportPath, "report", "", "Write the JSON run report to this path")
	cmd.Flags().BoolVar(&f.showSecrets, "show-secrets", false, "Print matched strings unredacted")
	return cmd
}

func runScan(cmd *cobra.Command, f scanFlags) error {
	if cmd.Flags().Changed("parallel") {
		cfg.Pipeline.Parallel = f.parallel
	}
	if cmd.Flags().Changed("pace") {
		cfg.Pipeline.Pace = f.pace.String()
	}
	if f.model != "" {
		cfg.LLM.Model = f.model
	}
	if cfg.Pipeline.Parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1, got %d", cfg.Pipeline.Parallel)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Oracle configuration problems are fatal before any message is read.
	oracle, err := newOracle(ctx, cfg)
	if err != nil {
		return err
	}
	traced := perception.NewTracingClient(oracle, cfg.LLM.Provider)

	msgs, err := feed.Load(f.feedPath)
	if err != nil {
		return err
	}

	p := pipeline.NewWithOracle(traced, cfg.GetPerCallTimeout(), pipeline.Options{
		Parallel: cfg.Pipeline.Parallel,
		Pace:     cfg.GetPace(),
	})

	r := ux.NewRenderer(cmd.OutOrStdout(), ux.DetectTheme()).ShowSecrets(f.showSecrets)
	r.Start(len(msgs))

	report, runErr := p.Run(ctx, msgs, r.Message)
	r.Summary(report)

	stats := traced.Stats()
	logger.Debug("oracle usage",
		zap.Int("calls", stats.Calls),
		zap.Int("failures", stats.Failures),
		zap.Duration("total_latency", stats.TotalLatency))

	if f.reportPath != "" {
		if err := writeReport(f.reportPath, report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("scan interrupted: %w", runErr)
	}
	return nil
}

func writeReport(path string, report *pipeline.Report) error {
	out := struct {
		*pipeline.Report
		Summary pipeline.Summary `json:"summary"`
	}{Report: report, Summary: report.Summary()}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
