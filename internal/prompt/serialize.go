// Package prompt turns loaded tables into the bounded text block a
// model request carries, and composes the final instruction string.
package prompt

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/table"
)

// DefaultRowCap bounds how many data rows per table reach the model.
const DefaultRowCap = 300

// Serialize renders every table of the workbook, in workbook order, as
// a delimited text block. Each table gets a header line naming it and
// the effective row window, then a CSV section (header row plus at most
// maxRows data rows, columns in source order). Blocks are separated by
// a blank line. Output is byte-identical for identical input.
//
// maxRows <= 0 emits the column header row only.
func Serialize(wb *table.Workbook, maxRows int) string {
	if maxRows < 0 {
		maxRows = 0
	}
	blocks := make([]string, 0, len(wb.Tables))
	for _, t := range wb.Tables {
		blocks = append(blocks, serializeTable(t, maxRows))
	}
	return strings.Join(blocks, "\n")
}

func serializeTable(t *table.Table, maxRows int) string {
	show := maxRows
	if show > len(t.Rows) {
		show = len(t.Rows)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s (showing %d of %d rows) ===\n", t.Name, show, len(t.Rows))
	if len(t.Columns) == 0 {
		return b.String()
	}
	w := csv.NewWriter(&b)
	_ = w.Write(t.Columns)
	for i := 0; i < show; i++ {
		_ = w.Write(t.Rows[i])
	}
	w.Flush()
	return b.String()
}
