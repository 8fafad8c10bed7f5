package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// loadCSV parses delimited text into a single-table workbook. The first
// record is the header; short rows are padded to the header width so
// every row has a value slot per column.
func loadCSV(name string, data []byte, delim rune) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Workbook{Tables: []*Table{{Name: tableName(name)}}}, nil
		}
		return nil, &LoadError{Name: name, Err: err}
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	t := &Table{Name: tableName(name), Columns: cols}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Name: name, Err: err}
		}
		row := make([]string, len(cols))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return &Workbook{Tables: []*Table{t}}, nil
}

func tableName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
