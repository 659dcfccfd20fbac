package ingest

import "time"

// CellKind tags a parsed cell so downstream normalization never inspects
// parser-library types.
type CellKind int

const (
	CellText CellKind = iota
	CellNumber
	CellDate
)

// Cell is one tabular cell. Text always carries the display value; Number
// and Date are additionally set for typed spreadsheet cells.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

func textCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Table is the parser output: one header row plus data rows, detached from
// any business meaning.
type Table struct {
	Headers []string
	Rows    [][]Cell
	// Lines maps each entry of Rows to its 1-based physical file line, for
	// sources that drop lines during parsing. Empty when rows are physical.
	Lines []int
	// Spreadsheet is true for xlsx/xls sources, whose declared bounds may
	// include a large trailing region of empty rows.
	Spreadsheet bool
}

// RowLine reports the physical file line of data row i. Spreadsheet rows are
// physical by construction, so the header offset alone positions them.
func (t *Table) RowLine(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// cellAt tolerates ragged rows: indexes past the end read as blank text.
func cellAt(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return Cell{}
	}
	return row[idx]
}
