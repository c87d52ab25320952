// Package report persists and renders extraction results: timestamped CSV
// exports, and console output in text or JSON form.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Join separator for multi-valued cells: each entry lands on its own line
// within a single CSV cell.
const cellSeparator = ",\n"

// Placeholders written when a category is empty.
const (
	noJoinConditions  = "No JOIN conditions"
	noWhereConditions = "No WHERE conditions"
)

// ExportRecord is the four-field persistence contract for one statement.
type ExportRecord struct {
	Query           string
	Tables          []string
	JoinConditions  []string
	WhereConditions []string
}

// Exporter writes one CSV file per extracted statement into a directory,
// named <base>_query_<n>_<timestamp>.csv. The timestamp is fixed at
// exporter creation so all files of a run share it; n counts statements
// per source file.
type Exporter struct {
	dir   string
	stamp string
	seq   map[string]int
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{
		dir:   dir,
		stamp: time.Now().Format("20060102_150405"),
		seq:   make(map[string]int),
	}
}

// Export writes the record for one statement of the given source file and
// returns the path written. The output directory is created on demand.
func (e *Exporter) Export(sourceFile string, rec ExportRecord) (string, error) {
	if err := os.MkdirAll(e.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	e.seq[base]++
	path := filepath.Join(e.dir, fmt.Sprintf("%s_query_%d_%s.csv", base, e.seq[base], e.stamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Query", "Table Names", "JOIN Conditions", "WHERE Conditions"}); err != nil {
		return "", err
	}
	row := []string{
		rec.Query,
		strings.Join(rec.Tables, cellSeparator),
		joinOr(rec.JoinConditions, noJoinConditions),
		joinOr(rec.WhereConditions, noWhereConditions),
	}
	if err := w.Write(row); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func joinOr(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return strings.Join(values, cellSeparator)
}
