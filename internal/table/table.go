package table

// Table is one sheet or one flat data source loaded into memory.
// Column order and row order match the source exactly; tables are
// not mutated after loading.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows (the header is not a row).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Select returns a projection of the table containing only the named
// columns, preserving the table's original column order. Unknown names
// are ignored. An empty selection returns the table unchanged.
func (t *Table) Select(cols []string) *Table {
	if len(cols) == 0 {
		return t
	}
	want := make(map[string]bool, len(cols))
	for _, c := range cols {
		want[c] = true
	}
	var idx []int
	for i, c := range t.Columns {
		if want[c] {
			idx = append(idx, i)
		}
	}
	if len(idx) == len(t.Columns) {
		return t
	}
	out := &Table{Name: t.Name, Columns: make([]string, len(idx))}
	for i, j := range idx {
		out.Columns[i] = t.Columns[j]
	}
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]string, len(idx))
		for i, j := range idx {
			if j < len(row) {
				nr[i] = row[j]
			}
		}
		out.Rows[r] = nr
	}
	return out
}

// Workbook is an ordered collection of tables produced by a single load
// event. Order is the source order (sheet order for spreadsheets); a new
// load replaces the whole workbook, never merges into it.
type Workbook struct {
	Tables []*Table
}

// Lookup finds a table by name.
func (w *Workbook) Lookup(name string) (*Table, bool) {
	for _, t := range w.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns table names in workbook order.
func (w *Workbook) Names() []string {
	out := make([]string, len(w.Tables))
	for i, t := range w.Tables {
		out[i] = t.Name
	}
	return out
}

// TotalRows sums data rows across all tables.
func (w *Workbook) TotalRows() int {
	n := 0
	for _, t := range w.Tables {
		n += t.RowCount()
	}
	return n
}
