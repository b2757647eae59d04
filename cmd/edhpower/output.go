package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validOutput(format string) bool {
	switch format {
	case outputText, outputJSON, outputYAML:
		return true
	}
	return false
}

// renderAnalysis writes result to w in the requested format.
func renderAnalysis(w io.Writer, result *analysis.DeckAnalysis, format string) error {
	switch format {
	case outputText:
		_, err := io.WriteString(w, analysis.Format(*result))
		return err
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// bracketColor maps low brackets to green and high ones to red.
func bracketColor(b taxonomy.Bracket) *color.Color {
	switch {
	case b >= taxonomy.BracketCEDH:
		return color.New(color.FgRed, color.Bold)
	case b == taxonomy.BracketOptimized:
		return color.New(color.FgMagenta, color.Bold)
	case b == taxonomy.BracketUpgraded:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func printHeadline(result *analysis.DeckAnalysis) {
	title := result.DeckName
	if title == "" {
		title = "Deck"
	}
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(os.Stderr)
	_, _ = cyan.Fprintf(os.Stderr, "%s\n", title)
	_, _ = bracketColor(result.BracketLevel).Fprintf(os.Stderr, "Bracket %d: %s\n\n", result.BracketLevel, result.BracketName)
}

func printSuccess(msg string) {
	_, _ = color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printWarning(msg string) {
	_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, "! %s\n", msg)
}

func printError(msg string) {
	_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", msg)
}
