// Package charts renders deck analyses as interactive HTML charts.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/commander/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// manaColors maps color keys to their pie slice colors.
var manaColors = map[string]string{
	"W": "#F8F6D8",
	"U": "#4A90D9",
	"B": "#5B4B5A",
	"R": "#D9534F",
	"G": "#3BA272",
	"C": "#B0B0B0",
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// DeckProfile is the chartable subset of an analysis.
type DeckProfile struct {
	Title          string
	Subtitle       string
	ManaCurve      []DataPoint
	CategoryScores []DataPoint
	ManaSymbols    []DataPoint
}

// ProfileFromAnalysis extracts the chart data from an analysis.
func ProfileFromAnalysis(a *analysis.DeckAnalysis) DeckProfile {
	title := a.DeckName
	if title == "" {
		title = "Deck Profile"
	}

	p := DeckProfile{
		Title:    title,
		Subtitle: fmt.Sprintf("Bracket %d - %s | Salt %.2f/10.99", a.BracketLevel, a.BracketName, a.OriginalSaltScore),
	}

	for cmc := 0; cmc <= stats.MaxCurveBucket; cmc++ {
		label := strconv.Itoa(cmc)
		if cmc == stats.MaxCurveBucket {
			label += "+"
		}
		p.ManaCurve = append(p.ManaCurve, DataPoint{Label: label, Value: float64(a.Stats.ManaCurve[cmc])})
	}

	cs := a.CategoryScores
	p.CategoryScores = []DataPoint{
		{"Interaction", cs.Interaction},
		{"Counterspell", cs.Counterspell},
		{"Removal", cs.Removal},
		{"Stax", cs.Stax},
		{"Taxes", cs.Taxes},
		{"Graveyard", cs.Graveyard},
		{"Recursion", cs.Recursion},
		{"Combo", cs.Combo},
		{"Tutor", cs.Tutor},
		{"Draw", cs.Draw},
		{"Ramp", cs.Ramp},
		{"Fast Mana", cs.FastMana},
	}

	for _, c := range stats.ManaColors {
		if n := a.Stats.ManaSymbolDistribution[c]; n > 0 {
			p.ManaSymbols = append(p.ManaSymbols, DataPoint{Label: c, Value: float64(n)})
		}
	}

	return p
}

func initOpts(config ChartConfig) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  config.Width,
		Height: config.Height,
		Theme:  config.Theme,
	})
}

func barChart(title, subtitle, series string, data []DataPoint, color string, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		initOpts(config),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{color}),
	)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(series, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	return bar
}

func pieChart(title string, data []DataPoint, config ChartConfig) *charts.Pie {
	pie := charts.NewPie()

	pie.SetGlobalOptions(
		initOpts(config),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	items := make([]opts.PieData, len(data))
	for i, point := range data {
		items[i] = opts.PieData{
			Name:      point.Label,
			Value:     point.Value,
			ItemStyle: &opts.ItemStyle{Color: manaColors[point.Label]},
		}
	}

	pie.AddSeries("Mana Symbols", items).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
		)

	return pie
}

// RenderDeckProfile writes a page with the mana curve, the category scores
// and the mana symbol distribution.
func RenderDeckProfile(p DeckProfile, config ChartConfig, w io.Writer) error {
	if len(config.Colors) < 2 {
		config.Colors = DefaultChartConfig().Colors
	}

	page := components.NewPage()
	page.PageTitle = p.Title
	page.AddCharts(
		barChart(p.Title+": Mana Curve", p.Subtitle, "Cards", p.ManaCurve, config.Colors[0], config),
		barChart("Category Scores", "0-10 per category", "Score", p.CategoryScores, config.Colors[1], config),
		pieChart("Mana Symbols", p.ManaSymbols, config),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteDeckProfile renders the profile into an HTML file.
func WriteDeckProfile(p DeckProfile, config ChartConfig, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return RenderDeckProfile(p, config, f)
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
