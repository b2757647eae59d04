package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ramonehamilton/edh-power/internal/charts"
	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

var analyzeFlags struct {
	output    string
	chartPath string
	openChart bool
	timeout   time.Duration
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <deck-url>",
	Short: "Rate a Commander deck",
	Long: `Fetch a deck from Moxfield or Archidekt and report its bracket level.

Examples:
  edhpower analyze https://moxfield.com/decks/abc123
  edhpower analyze https://archidekt.com/decks/42/my-deck --output json
  edhpower analyze https://moxfield.com/decks/abc123 --chart profile.html --open`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.output, "output", "o", "text", "Output format: text, json or yaml")
	f.StringVar(&analyzeFlags.chartPath, "chart", "", "Write an HTML deck profile chart to this path")
	f.BoolVar(&analyzeFlags.openChart, "open", false, "Open the chart in a browser after writing it")
	f.DurationVar(&analyzeFlags.timeout, "timeout", 2*time.Minute, "Overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if !validOutput(analyzeFlags.output) {
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", analyzeFlags.output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	analyzer, err := buildAnalyzer(cfg, logger, metrics.NewAnalysisMetrics())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeFlags.timeout)
	defer cancel()

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Fetching deck and card data..."
	s.Start()

	result, err := analyzer.Analyze(ctx, args[0])
	s.Stop()
	if err != nil {
		printError(err.Error())
		return err
	}

	if result.Metadata != nil && len(result.Metadata.FailedBatches) > 0 {
		printWarning(fmt.Sprintf("%d of %d card data batches failed; some cards may be miscategorized",
			len(result.Metadata.FailedBatches), result.Metadata.Batches))
	}

	if analyzeFlags.output == outputText {
		printHeadline(result)
	}
	if err := renderAnalysis(cmd.OutOrStdout(), result, analyzeFlags.output); err != nil {
		return err
	}

	if analyzeFlags.chartPath != "" {
		return writeChart(result, analyzeFlags.chartPath, analyzeFlags.openChart)
	}
	return nil
}

func writeChart(result *analysis.DeckAnalysis, path string, open bool) error {
	profile := charts.ProfileFromAnalysis(result)
	if err := charts.WriteDeckProfile(profile, charts.DefaultChartConfig(), path); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	printSuccess(fmt.Sprintf("Chart written to %s", path))

	if open {
		if err := charts.OpenInBrowser(path); err != nil {
			printWarning(fmt.Sprintf("Failed to open browser: %v", err))
		}
	}
	return nil
}
