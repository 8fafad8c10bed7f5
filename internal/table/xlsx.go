package table

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// loadXLSX opens a .xlsx archive and loads every sheet, in workbook
// order, as one table each. The first row of a sheet becomes the column
// header; remaining rows become data rows padded to the header width.
func loadXLSX(name string, data []byte) (*Workbook, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &LoadError{Name: name, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	sheets := parseSheetList(readZipFile(zr, "xl/workbook.xml"))
	if len(sheets) == 0 {
		return nil, &LoadError{Name: name, Err: fmt.Errorf("no sheets in workbook")}
	}
	rels := parseSheetRels(readZipFile(zr, "xl/_rels/workbook.xml.rels"))
	shared := parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml"))

	wb := &Workbook{}
	for i, s := range sheets {
		target := ""
		if rel, ok := rels[s.RID]; ok {
			target = normalizeSheetPath(rel)
		}
		if target == "" {
			target = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
		t, err := readSheet(s.Name, readZipFile(zr, target), shared)
		if err != nil {
			return nil, &LoadError{Name: name, Err: err}
		}
		wb.Tables = append(wb.Tables, t)
	}
	return wb, nil
}

func readSheet(name string, data []byte, shared []string) (*Table, error) {
	t := &Table{Name: name}
	rr := newRowReader(data, shared)
	header, ok := rr.Next()
	if !ok {
		return t, nil
	}
	t.Columns = make([]string, len(header))
	for i, h := range header {
		t.Columns[i] = strings.TrimSpace(h)
	}
	ncol := len(t.Columns)
	for {
		row, ok := rr.Next()
		if !ok {
			break
		}
		r := make([]string, ncol)
		copy(r, row)
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

type sheetEntry struct {
	Name string
	RID  string
}

// parseSheetList extracts sheet names and relationship ids from
// xl/workbook.xml in document order.
func parseSheetList(data []byte) []sheetEntry {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var sheets []sheetEntry
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var s sheetEntry
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "name":
					s.Name = a.Value
				case "id": // r: namespace
					s.RID = a.Value
				}
			}
			sheets = append(sheets, s)
		}
	}
}

func parseSheetRels(data []byte) map[string]string {
	out := map[string]string{}
	if len(data) == 0 {
		return out
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var id, target string
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "Id":
					id = a.Value
				case "Target":
					target = a.Value
				}
			}
			if id != "" && target != "" {
				out[id] = target
			}
		}
	}
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "si" {
				buf.Reset()
			}
			if se.Name.Local == "t" {
				inT = true
			}
		case xml.EndElement:
			if se.Name.Local == "t" {
				inT = false
			}
			if se.Name.Local == "si" {
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write([]byte(se))
			}
		}
	}
}

// rowReader streams <row> elements out of one worksheet XML document.
type rowReader struct {
	dec    *xml.Decoder
	shared []string
	inRow  bool
	cur    []string
	maxCol int
}

func newRowReader(data []byte, shared []string) *rowReader {
	return &rowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (r *rowReader) Next() ([]string, bool) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				r.inRow = true
				r.cur = nil
				r.maxCol = 0
			}
			if r.inRow && se.Name.Local == "c" {
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := colIndexFromRef(ref)
				if col < 0 {
					// no cell ref: append after the last seen cell
					col = len(r.cur)
				}
				if col+1 > r.maxCol {
					r.maxCol = col + 1
				}
				val := r.readCellValue(typ)
				if len(r.cur) <= col {
					tmp := make([]string, col+1)
					copy(tmp, r.cur)
					r.cur = tmp
				}
				r.cur[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				if len(r.cur) < r.maxCol {
					tmp := make([]string, r.maxCol)
					copy(tmp, r.cur)
					r.cur = tmp
				}
				r.inRow = false
				return r.cur, true
			}
		}
	}
}

func (r *rowReader) readCellValue(typ string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, er := r.dec.Token()
					if er != nil {
						break
					}
					if ed, ok := tk.(xml.EndElement); ok && (ed.Name.Local == "v" || ed.Name.Local == "t") {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write([]byte(ch))
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local == "c" {
				if typ == "s" { // shared string
					idx := atoiSafe(val)
					if idx >= 0 && idx < len(r.shared) {
						return r.shared[idx]
					}
					return ""
				}
				return val
			}
		}
	}
}

// colIndexFromRef converts refs like "C12" to a 0-based column index.
func colIndexFromRef(ref string) int {
	i := 0
	for i < len(ref) {
		c := ref[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			i++
			continue
		}
		break
	}
	s := strings.ToUpper(ref[:i])
	idx := 0
	for j := 0; j < len(s); j++ {
		idx = idx*26 + int(s[j]-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeSheetPath converts relationship Target paths to ZIP entry
// paths. Targets may carry a leading slash ("/xl/worksheets/sheet1.xml")
// which ZIP entries never have.
func normalizeSheetPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}
