package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a spreadsheet or flat text file from disk into a Workbook.
// The format is selected by extension: .xlsx loads every sheet, .csv and
// .tsv load a single table, .txt loads a single one-column table.
func Load(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissingSource
		}
		return nil, &LoadError{Name: filepath.Base(path), Err: err}
	}
	return LoadBytes(filepath.Base(path), data)
}

// LoadReader loads from an already-open source, e.g. an uploaded file.
// name must carry the original extension so the format can be selected.
func LoadReader(name string, r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return LoadBytes(name, data)
}

// LoadBytes parses in-memory file content into a Workbook.
func LoadBytes(name string, data []byte) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return loadXLSX(name, data)
	case ".csv":
		return loadCSV(name, data, ',')
	case ".tsv":
		return loadCSV(name, data, '\t')
	case ".txt":
		return loadTxt(name, data), nil
	default:
		return nil, &LoadError{Name: name, Err: fmt.Errorf("unsupported extension %q", filepath.Ext(name))}
	}
}

// loadTxt treats a plain text file as a single one-column table, one row
// per line, named after the file.
func loadTxt(name string, data []byte) *Workbook {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	t := &Table{Name: base, Columns: []string{"text"}}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		t.Rows = append(t.Rows, []string{strings.TrimRight(line, "\r")})
	}
	return &Workbook{Tables: []*Table{t}}
}
