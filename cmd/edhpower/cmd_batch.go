package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/export"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

var batchFlags struct {
	exportPath string
	format     string
	overwrite  bool
	timeout    time.Duration
}

var batchCmd = &cobra.Command{
	Use:   "batch <url-file>",
	Short: "Rate every deck listed in a file",
	Long: `Analyze each deck URL in a file (one per line, '#' starts a comment) and
write a summary table. Use '-' to read URLs from stdin.

Decks are analyzed one after another so card data requests stay paced.
A failed deck becomes an error row instead of stopping the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.exportPath, "export", "e", "", "Write the summary to this file (default: stdout)")
	f.StringVarP(&batchFlags.format, "format", "f", "", "Summary format: csv, json or yaml (default: from --export extension, else csv)")
	f.BoolVar(&batchFlags.overwrite, "overwrite", false, "Replace an existing export file")
	f.DurationVar(&batchFlags.timeout, "timeout", 2*time.Minute, "Timeout per deck")
}

func runBatch(cmd *cobra.Command, args []string) error {
	format := export.FormatCSV
	if batchFlags.format != "" || batchFlags.exportPath != "" {
		f, err := export.ParseFormat(batchFlags.format, batchFlags.exportPath)
		if err != nil {
			return err
		}
		format = f
	}

	urls, err := readURLs(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no deck URLs in %s", args[0])
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

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Start()
	rows := analyzeAll(cmd.Context(), analyzer, urls, batchFlags.timeout, func(i int) {
		s.Lock()
		s.Suffix = fmt.Sprintf(" Analyzing deck %d of %d...", i+1, len(urls))
		s.Unlock()
	})
	s.Stop()

	failed := 0
	for _, row := range rows {
		if row.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		printWarning(fmt.Sprintf("%d of %d decks failed", failed, len(rows)))
	}

	if batchFlags.exportPath == "" {
		return export.ToWriter(cmd.OutOrStdout(), format, rows)
	}
	if err := export.ToFile(export.Options{
		Format:    format,
		FilePath:  batchFlags.exportPath,
		Overwrite: batchFlags.overwrite,
	}, rows); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Summary of %d decks written to %s", len(rows), batchFlags.exportPath))
	return nil
}

// deckAnalyzer is the part of analysis.Analyzer the batch run needs.
type deckAnalyzer interface {
	Analyze(ctx context.Context, deckURL string) (*analysis.DeckAnalysis, error)
}

// analyzeAll runs the analyses sequentially, one row per URL in input order.
func analyzeAll(ctx context.Context, a deckAnalyzer, urls []string, timeout time.Duration, progress func(int)) []export.SummaryRow {
	rows := make([]export.SummaryRow, 0, len(urls))
	for i, u := range urls {
		if progress != nil {
			progress(i)
		}
		deckCtx, cancel := context.WithTimeout(ctx, timeout)
		result, err := a.Analyze(deckCtx, u)
		cancel()
		rows = append(rows, export.NewSummaryRow(u, result, err))
	}
	return rows
}

// readURLs reads one URL per line from path, or from stdin when path is "-".
func readURLs(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open url file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url file: %w", err)
	}
	return urls, nil
}
