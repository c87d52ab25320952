// Package source discovers and reads SQL input blobs from files. Each blob
// carries its own origin locator; one blob may contain several
// semicolon-separated statements, which the extraction engine segments.
package source

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Blob is one raw text unit handed to the extraction engine: a whole .sql
// or .txt file, or a single cell of a .csv file.
type Blob struct {
	Text   string
	Origin string // file path, or file:row:col for tabular sources
	File   string // the file path alone, for output naming
}

// supported input extensions.
var extensions = map[string]bool{
	".sql": true,
	".txt": true,
	".csv": true,
}

// Discover returns the input files under path in walk order. A file path
// returns itself; a directory is walked for supported extensions.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if extensions[strings.ToLower(filepath.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Load reads one input file into blobs. CSV files yield one blob per
// non-empty cell; anything else is read whole.
func Load(path string) ([]Blob, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSV(path)
	}
	return loadText(path)
}

func loadText(path string) ([]Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return []Blob{{Text: string(data), Origin: path, File: path}}, nil
}

// loadCSV reads every cell of a CSV file as its own blob. Cell origin
// coordinates are 1-based. Ragged rows are tolerated.
func loadCSV(path string) ([]Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var blobs []Blob
	for ri, record := range records {
		for ci, cell := range record {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			blobs = append(blobs, Blob{
				Text:   cell,
				Origin: fmt.Sprintf("%s:%d:%d", path, ri+1, ci+1),
				File:   path,
			})
		}
	}
	return blobs, nil
}

// LoadAll loads every discovered file under path.
func LoadAll(path string) ([]Blob, error) {
	files, err := Discover(path)
	if err != nil {
		return nil, err
	}
	var blobs []Blob
	for _, file := range files {
		loaded, err := Load(file)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, loaded...)
	}
	return blobs, nil
}
