package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
	"github.com/ramonehamilton/edh-power/internal/config"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

func sampleResult() *analysis.DeckAnalysis {
	return &analysis.DeckAnalysis{
		BracketLevel:      taxonomy.BracketUpgraded,
		BracketName:       "Upgraded",
		CombinedScore:     3,
		OriginalSaltScore: 5.5,
		Details:           "Commander: Someone\n",
		Suggestions:       []string{"Add more removal"},
		DeckName:          "Test Deck",
	}
}

func TestRenderAnalysis(t *testing.T) {
	result := sampleResult()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderAnalysis(&buf, result, outputText))
		assert.Contains(t, buf.String(), "Bracket: 3 - Upgraded")
		assert.Contains(t, buf.String(), "1. Add more removal")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderAnalysis(&buf, result, outputJSON))
		var got analysis.DeckAnalysis
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, taxonomy.BracketUpgraded, got.BracketLevel)
		assert.Equal(t, "Test Deck", got.DeckName)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderAnalysis(&buf, result, outputYAML))
		var got map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 3, got["bracketLevel"])
		assert.Equal(t, 5.5, got["originalSaltScore"])
		assert.NotContains(t, got, "stats")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, renderAnalysis(&bytes.Buffer{}, result, "xml"))
		assert.False(t, validOutput("xml"))
	})
}

func TestBuildAnalyzer(t *testing.T) {
	moxfield := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Wired",
			"commanders": {"Atraxa, Praetors' Voice": {"quantity": 1, "card": {"name": "Atraxa, Praetors' Voice", "type_line": "Legendary Creature", "oracle_text": "Flying", "color_identity": ["W","U","B","G"]}}},
			"mainboard": {"Sol Ring": {"quantity": 1, "card": {"name": "Sol Ring", "type_line": "Artifact", "oracle_text": "{T}: Add {C}{C}.", "cmc": 1}}}
		}`))
	}))
	defer moxfield.Close()

	cfg := config.DefaultConfig()
	cfg.Sources.MoxfieldBaseURL = moxfield.URL
	cfg.Scryfall.BaseURL = "http://127.0.0.1:1" // never reached: every card has rules text

	m := metrics.NewAnalysisMetrics()
	analyzer, err := buildAnalyzer(cfg, nil, m)
	require.NoError(t, err)

	result, err := analyzer.Analyze(testContext(t), "https://www.moxfield.com/decks/wired1")
	require.NoError(t, err)
	assert.Equal(t, "Wired", result.DeckName)
	assert.True(t, result.Metadata.Skipped)
	assert.EqualValues(t, 1, m.GetStats().Analyses)
}

func TestBuildAnalyzer_BadDurations(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources.HTTPTimeout = "soon"
	_, err := buildAnalyzer(cfg, nil, nil)
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Scryfall.BatchDelay = "later"
	_, err = buildAnalyzer(cfg, nil, nil)
	assert.Error(t, err)
}

func TestMigrateAndVersionCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "edh.db")
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.Save(configPath))

	run := func(args ...string) string {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
		require.NoError(t, rootCmd.Execute())
		return strings.TrimSpace(out.String())
	}
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		rootFlags.configPath = ""
	})

	assert.Equal(t, "schema version 0", run("migrate", "version"))
	assert.Equal(t, "schema version 1", run("migrate", "up"))
	assert.Equal(t, "schema version 0", run("migrate", "down"))
	assert.Contains(t, run("version"), "edh-power")

	_, err := os.Stat(cfg.Database.Path)
	assert.NoError(t, err)
}

type scriptedAnalyzer map[string]error

func (s scriptedAnalyzer) Analyze(_ context.Context, deckURL string) (*analysis.DeckAnalysis, error) {
	if err := s[deckURL]; err != nil {
		return nil, err
	}
	return &analysis.DeckAnalysis{BracketLevel: taxonomy.BracketCore, BracketName: "Core", DeckName: deckURL}, nil
}

func TestAnalyzeAll(t *testing.T) {
	a := scriptedAnalyzer{"bad": errors.New("unsupported deck site")}

	var seen []int
	rows := analyzeAll(testContext(t), a, []string{"one", "bad", "two"}, time.Second, func(i int) { seen = append(seen, i) })

	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, "one", rows[0].DeckName)
	assert.Equal(t, 2, rows[0].Bracket)
	assert.Equal(t, "unsupported deck site", rows[1].Error)
	assert.Equal(t, "two", rows[2].URL)
}

func TestReadURLs(t *testing.T) {
	input := "# my decks\nhttps://moxfield.com/decks/a\n\n  https://archidekt.com/decks/1/x  \n"

	urls, err := readURLs(strings.NewReader(input), "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://moxfield.com/decks/a", "https://archidekt.com/decks/1/x"}, urls)

	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))
	urls, err = readURLs(nil, path)
	require.NoError(t, err)
	assert.Len(t, urls, 2)

	_, err = readURLs(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// testContext returns a context canceled when the test finishes,
// matching testing.T.Context (Go 1.24+) on older toolchains.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
