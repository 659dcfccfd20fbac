package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyFile           = errors.New("file is empty")
	ErrNoWorksheet         = errors.New("workbook has no worksheet")
	ErrUnsupportedFile     = errors.New("unsupported file type")
	ErrApplicationNotFound = errors.New("application not found")
)

// ColumnCountError rejects a header row whose width falls outside the
// accepted range for the upload kind.
type ColumnCountError struct {
	Required []string
	Optional []string
	Got      int
}

func (e *ColumnCountError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invalid column count. Expected %d-%d columns (%d required + %d optional), got %d. Required columns: %s",
		len(e.Required), len(e.Required)+len(e.Optional),
		len(e.Required), len(e.Optional), e.Got,
		strings.Join(e.Required, ", "))
	if len(e.Optional) > 0 {
		fmt.Fprintf(&b, ". Optional: %s", strings.Join(e.Optional, ", "))
	}
	return b.String()
}

// MissingColumnsError names the required columns absent from the header.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing required columns: " + strings.Join(e.Missing, ", ")
}

// RowError is one rejected row in a validation report.
type RowError struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

// ValidationError carries the full per-row rejection list for a batch that
// failed the validate-all gate. No rows from such a batch are committed.
type ValidationError struct {
	SkippedRows    []RowError
	TotalProcessed int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d of %d rows failed validation", len(e.SkippedRows), e.TotalProcessed)
}
