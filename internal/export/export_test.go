package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/commander/taxonomy"
)

type testRow struct {
	ID        int       `csv:"id"`
	Name      string    `csv:"name"`
	Value     float64   `csv:"value"`
	Active    bool      `csv:"active"`
	Tags      []string  `csv:"tags"`
	CreatedAt time.Time `csv:"created_at"`
	Pointer   *string   `csv:"pointer"`
	Hidden    string    `csv:"-"`
	Untagged  string
}

func stringPtr(s string) *string { return &s }

func testRows() []testRow {
	return []testRow{
		{ID: 1, Name: "Test1", Value: 10.5, Active: true, Tags: []string{"a", "b"},
			CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), Pointer: stringPtr("p"), Hidden: "x", Untagged: "u"},
		{ID: 2, Name: "Test, 2", Value: 20.333, CreatedAt: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
	}
}

func TestToWriter_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ToWriter(&buf, FormatCSV, testRows()); err != nil {
		t.Fatalf("ToWriter failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "id,name,value,active,tags,created_at,pointer,Untagged" {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if lines[1] != "1,Test1,10.50,true,a; b,2024-01-01T12:00:00Z,p,u" {
		t.Errorf("Unexpected row 1: %q", lines[1])
	}
	if lines[2] != `2,"Test, 2",20.33,false,,2024-01-02T12:00:00Z,,` {
		t.Errorf("Unexpected row 2: %q", lines[2])
	}
}

func TestToWriter_CSVErrors(t *testing.T) {
	if err := ToWriter(&bytes.Buffer{}, FormatCSV, []testRow{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
	if err := ToWriter(&bytes.Buffer{}, FormatCSV, testRow{}); err == nil {
		t.Error("Expected error for non-slice")
	}
	if err := ToWriter(&bytes.Buffer{}, FormatCSV, []int{1}); err == nil {
		t.Error("Expected error for slice of non-structs")
	}
	if err := ToWriter(&bytes.Buffer{}, Format("xml"), testRows()); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestToWriter_JSONAndYAML(t *testing.T) {
	rows := []SummaryRow{{URL: "https://moxfield.com/decks/a", Bracket: 4, SaltScore: 8.1}}

	var jsonBuf bytes.Buffer
	if err := ToWriter(&jsonBuf, FormatJSON, rows); err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	var fromJSON []SummaryRow
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if fromJSON[0].Bracket != 4 {
		t.Errorf("Expected bracket 4, got %d", fromJSON[0].Bracket)
	}

	var yamlBuf bytes.Buffer
	if err := ToWriter(&yamlBuf, FormatYAML, rows); err != nil {
		t.Fatalf("YAML export failed: %v", err)
	}
	var fromYAML []SummaryRow
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("Invalid YAML: %v", err)
	}
	if fromYAML[0].SaltScore != 8.1 {
		t.Errorf("Expected salt 8.1, got %v", fromYAML[0].SaltScore)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	opts := Options{Format: FormatCSV, FilePath: path}

	if err := ToFile(opts, testRows()); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,name") {
		t.Errorf("Unexpected content: %q", data)
	}

	if err := ToFile(opts, testRows()); err == nil {
		t.Error("Expected error when file exists without overwrite")
	}

	opts.Overwrite = true
	if err := ToFile(opts, testRows()); err != nil {
		t.Errorf("Expected overwrite to succeed, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       Format
		wantErr    bool
	}{
		{"csv", "", FormatCSV, false},
		{"JSON", "", FormatJSON, false},
		{"", "out.yml", FormatYAML, false},
		{"", "out.csv", FormatCSV, false},
		{"", "out", "", true},
		{"xml", "out.csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.name, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q, %q) error = %v, wantErr %v", tt.name, tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q, %q) = %q, want %q", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestNewSummaryRow(t *testing.T) {
	a := &analysis.DeckAnalysis{
		BracketLevel:      taxonomy.BracketOptimized,
		BracketName:       "Optimized",
		OriginalSaltScore: 8.4,
		SaltBracketLevel:  taxonomy.BracketOptimized,
		GameChangersCount: 2,
		TutorCount:        3,
		ComboCount:        1,
		DeckName:          "Turbo",
		Commanders:        []string{"Kinnan, Bonder Prodigy"},
		Metadata:          &analysis.MetadataSummary{Batches: 2, FailedBatches: []int{1}},
	}

	row := NewSummaryRow("https://moxfield.com/decks/t", a, nil)
	if row.Bracket != 4 || row.SaltBracket != 4 || row.Tutors != 3 || row.FailedBatches != 1 {
		t.Errorf("Unexpected row: %+v", row)
	}
	if row.Error != "" {
		t.Errorf("Expected no error, got %q", row.Error)
	}

	failed := NewSummaryRow("https://example.com/x", nil, errors.New("unsupported deck site"))
	if failed.Error != "unsupported deck site" || failed.Bracket != 0 {
		t.Errorf("Unexpected error row: %+v", failed)
	}

	var buf bytes.Buffer
	if err := ToWriter(&buf, FormatCSV, []SummaryRow{row, failed}); err != nil {
		t.Fatalf("CSV export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Kinnan, Bonder Prodigy") {
		t.Errorf("Expected commander in CSV, got %q", buf.String())
	}
}
