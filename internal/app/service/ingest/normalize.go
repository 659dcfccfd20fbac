package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/pkg/types"
)

// normalizeDictionaryRow converts one dictionary-file row into an entry for
// the given application. Rows whose success-flag cell is unrecognized
// (including blank) return nil and are excluded from the batch without
// erroring; a recognized flag keeps the row even when type or RC are blank.
func normalizeDictionaryRow(appID int64, row []Cell, cols map[string]int) *models.DictionaryEntry {
	class, ok := types.ParseErrorClassFlag(cellAt(row, cols[ColErrorClass]).Text)
	if !ok {
		return nil
	}
	e := &models.DictionaryEntry{
		ApplicationID:   appID,
		TransactionType: strings.TrimSpace(cellAt(row, cols[ColTransactionType]).Text),
		RC:              strings.TrimSpace(cellAt(row, cols[ColRC]).Text),
		ErrorClass:      class,
	}
	if idx, bound := cols[ColDescription]; bound {
		e.Description = optionalText(cellAt(row, idx).Text)
	}
	return e
}

// successRateNormalizer turns bound success-rate rows into fact records.
// Hard errors (unresolvable date, blank required field) are returned so the
// caller can reject the whole batch; structurally blank rows return nil.
type successRateNormalizer struct {
	appID       int64
	cols        map[string]int
	spreadsheet bool
}

func (n *successRateNormalizer) normalize(row []Cell) (*models.SuccessRateFact, error) {
	dateCell := cellAt(row, n.cols[ColDate])
	txType := strings.TrimSpace(cellAt(row, n.cols[ColTransactionType]).Text)

	if isBlankCell(dateCell) && txType == "" {
		return nil, nil
	}

	date, err := n.resolveDate(dateCell)
	if err != nil {
		return nil, err
	}
	if txType == "" {
		return nil, fmt.Errorf("missing required field %q", ColTransactionType)
	}

	f := &models.SuccessRateFact{
		ApplicationID:   n.appID,
		Date:            date,
		Month:           strconv.Itoa(int(date.Month())),
		Year:            date.Year(),
		TransactionType: txType,
		RC:              optionalText(cellAt(row, n.cols[ColRC]).Text),
		TotalCount:      parseCount(cellAt(row, n.cols[ColCount]).Text),
		TotalAmount:     parseAmount(cellAt(row, n.cols[ColAmount]).Text),
		TotalFee:        parseAmount(cellAt(row, n.cols[ColFee]).Text),
		Status:          optionalText(cellAt(row, n.cols[ColStatus]).Text),
	}
	if idx, bound := n.cols[ColDescription]; bound {
		f.Description = optionalText(cellAt(row, idx).Text)
	}
	if f.Status != nil && types.IsSuccessStatus(*f.Status) && f.Description == nil {
		desc := defaultDescription
		f.Description = &desc
	}
	return f, nil
}

// resolveDate tries, in order: a native spreadsheet date, a numeric date
// serial, DD/MM/YYYY, YYYY-MM-DD, a numeric-text serial, then a handful of
// generic layouts. time.Parse already rejects impossible calendar dates.
func (n *successRateNormalizer) resolveDate(cell Cell) (time.Time, error) {
	switch cell.Kind {
	case CellDate:
		return truncateDay(cell.Date), nil
	case CellNumber:
		if n.spreadsheet {
			if d, ok := excelSerialDate(cell.Number); ok {
				return d, nil
			}
		}
	}

	text := strings.TrimSpace(cell.Text)
	if text == "" {
		return time.Time{}, fmt.Errorf("missing required field %q", ColDate)
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if d, err := time.Parse(layout, text); err == nil {
			return d, nil
		}
	}
	if n.spreadsheet {
		if serial, err := strconv.ParseFloat(text, 64); err == nil {
			if d, ok := excelSerialDate(serial); ok {
				return d, nil
			}
		}
	}
	for _, layout := range []string{"2/1/2006", "02-01-2006", "2006/01/02", "2 Jan 2006", "2-Jan-2006", time.RFC3339} {
		if d, err := time.Parse(layout, text); err == nil {
			return truncateDay(d), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", text)
}

// excelSerialDate converts a spreadsheet day serial. Serials before the
// phantom 1900-02-29 count from 1899-12-31; later serials count from
// 1899-12-30, which absorbs the extra day.
func excelSerialDate(serial float64) (time.Time, bool) {
	if serial < 1 || serial > 2958465 {
		return time.Time{}, false
	}
	base := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	if serial < 60 {
		base = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return base.AddDate(0, 0, int(serial)), true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isBlankCell(c Cell) bool {
	return c.Kind == CellText && strings.TrimSpace(c.Text) == ""
}

// optionalText maps a blank cell to nil so it persists as NULL.
func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseCount reads an integer aggregate. Non-numeric content is stored as
// NULL rather than failing the row.
func parseCount(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	v := d.IntPart()
	return &v
}

// parseAmount reads a decimal aggregate with the same leniency as parseCount.
func parseAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
