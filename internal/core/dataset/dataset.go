// Package dataset loads tabular data from CSV, JSON and YAML files, infers
// column kinds, and generates arbitrary datasets for exploration.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/logging"
	"github.com/colonyops/vgrid/internal/core/types"
	"github.com/colonyops/vgrid/pkg/iojson"
)

// ErrUnknownFormat is returned for files whose format cannot be determined.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Format is an input file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Dataset is a schema and its rows.
type Dataset struct {
	Source string
	Schema *columns.Schema
	Rows   []types.Row
}

// Options tune loading.
type Options struct {
	// Format overrides extension-based detection. Required for stdin.
	Format Format
	// Columns declares kinds and display settings for some or all columns.
	// Undeclared columns are inferred.
	Columns []columns.Column
}

// Load reads a dataset from path, or from stdin when path is "" or "-".
func Load(path string, opts Options) (*Dataset, error) {
	format := opts.Format
	if format == "" {
		if path == "" || path == "-" {
			return nil, fmt.Errorf("%w: stdin needs an explicit format", ErrUnknownFormat)
		}
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	rc, err := iojson.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	start := time.Now()
	ds, err := Read(rc, format, opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ds.Source = path
	if ds.Source == "" || ds.Source == "-" {
		ds.Source = "stdin"
	}

	logging.Component("dataset").Debug().
		Str("source", ds.Source).
		Str("format", string(format)).
		Int("rows", len(ds.Rows)).
		Int("columns", ds.Schema.Len()).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")

	return ds, nil
}

// Read decodes a dataset in the given format.
func Read(r io.Reader, format Format, declared []columns.Column) (*Dataset, error) {
	var (
		t   *table
		err error
	)
	switch format {
	case CSV:
		t, err = readCSV(r)
	case JSON, YAML:
		t, err = readDocument(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return t.build(declared)
}

// LoadColumns reads column declarations from a YAML file.
func LoadColumns(path string) ([]columns.Column, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var cols []columns.Column
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return cols, nil
}
