package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Parse decodes an uploaded file into a Table based on its extension.
// Business meaning (column binding, typing) is applied later.
func Parse(fileName string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return parseCSVTable(data)
	case ".xlsx":
		return parseXLSXTable(data)
	case ".xls":
		return parseXLSTable(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(fileName))
	}
}

func parseCSVTable(data []byte) (*Table, error) {
	rows, lines := parseCSV(string(data))
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	t := &Table{Headers: headers}
	for i, row := range rows[1:] {
		cells := make([]Cell, 0, len(row))
		for _, field := range row {
			cells = append(cells, textCell(field))
		}
		t.Rows = append(t.Rows, cells)
		t.Lines = append(t.Lines, lines[i+1])
	}
	return t, nil
}

func parseXLSXTable(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	t := &Table{Spreadsheet: true}
	for _, h := range rows[0] {
		if s := strings.TrimSpace(h); s != "" {
			t.Headers = append(t.Headers, s)
		}
	}

	for r := 1; r < len(rows); r++ {
		cells := make([]Cell, 0, len(rows[r]))
		for c := range rows[r] {
			cells = append(cells, xlsxCell(f, sheet, c, r, rows[r][c]))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// xlsxCell classifies one cell into the Date | Number | Text variant using
// the raw (unformatted) value plus the cell type reported by excelize.
func xlsxCell(f *excelize.File, sheet string, col, row int, formatted string) Cell {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return textCell(strings.TrimSpace(formatted))
	}

	raw, _ := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	raw = strings.TrimSpace(raw)

	if ct, err := f.GetCellType(sheet, axis); err == nil && ct == excelize.CellTypeDate {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if d, err := time.Parse(layout, raw); err == nil {
				return Cell{Kind: CellDate, Text: strings.TrimSpace(formatted), Date: d}
			}
		}
	}

	if raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Cell{Kind: CellNumber, Text: strings.TrimSpace(formatted), Number: n}
		}
	}
	return textCell(strings.TrimSpace(formatted))
}

func parseXLSTable(data []byte) (*Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	t := &Table{Spreadsheet: true}
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			if r > 0 {
				t.Rows = append(t.Rows, nil)
			}
			continue
		}
		if r == 0 {
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				if s := strings.TrimSpace(row.Col(c)); s != "" {
					t.Headers = append(t.Headers, s)
				}
			}
			continue
		}
		cells := make([]Cell, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, textCell(strings.TrimSpace(row.Col(c))))
		}
		t.Rows = append(t.Rows, cells)
	}
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return t, nil
}
