package ingest

import "strings"

// parseCSV splits CSV text into rows of trimmed fields, honoring
// RFC4180-style quoting: a doubled quote escapes a quote, commas and
// newlines inside quotes are preserved, and \r\n / \r / \n all terminate a
// row. Physical lines that are blank are dropped, which also swallows the
// trailing newline of the file. The second result carries the 1-based
// physical file line each kept row started on, so row reports stay accurate
// across dropped blanks.
func parseCSV(text string) ([][]string, []int) {
	var rows [][]string
	var lines []int
	var row []string
	var field strings.Builder
	inQuotes := false
	sawQuote := false
	line := 1
	startLine := 1

	endLine := func() {
		blank := len(row) == 0 && !sawQuote && strings.TrimSpace(field.String()) == ""
		if !blank {
			row = append(row, strings.TrimSpace(field.String()))
			rows = append(rows, row)
			lines = append(lines, startLine)
		}
		row = nil
		field.Reset()
		sawQuote = false
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			sawQuote = true
		case ch == ',' && !inQuotes:
			row = append(row, strings.TrimSpace(field.String()))
			field.Reset()
		case ch == '\n' || ch == '\r':
			if inQuotes {
				field.WriteByte(ch)
				if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
					field.WriteByte('\n')
					i++
				}
				line++
				continue
			}
			endLine()
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			line++
			startLine = line
		default:
			field.WriteByte(ch)
		}
	}
	endLine()

	return rows, lines
}
