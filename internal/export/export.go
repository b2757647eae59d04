// Package export writes analysis summaries as CSV, JSON or YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format represents the export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrNoData is returned when a CSV export is given an empty slice.
var ErrNoData = errors.New("no data to export")

// ParseFormat accepts a format name, falling back to the file extension of
// path when name is empty.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch f := Format(strings.ToLower(name)); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", name)
	}
}

// Options holds configuration for file exports.
type Options struct {
	Format    Format
	FilePath  string
	Overwrite bool
}

// ToFile exports data to opts.FilePath, creating parent directories.
func ToFile(opts Options, data interface{}) (err error) {
	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if _, statErr := os.Stat(opts.FilePath); statErr == nil && !opts.Overwrite {
		return fmt.Errorf("file already exists: %s (use overwrite option to replace)", opts.FilePath)
	}

	file, err := os.Create(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return ToWriter(file, opts.Format, data)
}

// ToWriter exports data to w. CSV requires a non-empty slice of structs.
func ToWriter(w io.Writer, format Format, data interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, data)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeCSV(w io.Writer, data interface{}) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("CSV export requires a slice, got %s", v.Kind())
	}
	if v.Len() == 0 {
		return ErrNoData
	}

	first := indirect(v.Index(0))
	if first.Kind() != reflect.Struct {
		return fmt.Errorf("CSV export requires a slice of structs")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders(first.Type())); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := 0; i < v.Len(); i++ {
		if err := writer.Write(csvRow(indirect(v.Index(i)))); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func indirect(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Ptr {
		return v.Elem()
	}
	return v
}

// csvHeaders uses the csv tag, or the field name when there is none.
func csvHeaders(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("csv")
		if !field.IsExported() || tag == "-" {
			continue
		}
		if tag == "" {
			tag = field.Name
		}
		headers = append(headers, tag)
	}
	return headers
}

func csvRow(v reflect.Value) []string {
	var row []string
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}
		row = append(row, csvValue(v.Field(i)))
	}
	return row
}

func csvValue(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = csvValue(v.Index(i))
		}
		return strings.Join(parts, "; ")
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t.Format(time.RFC3339)
		}
		return fmt.Sprintf("%v", v.Interface())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
