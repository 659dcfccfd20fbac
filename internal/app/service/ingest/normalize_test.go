package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kurniadi/rcdash/pkg/types"
)

func successRateCols() map[string]int {
	cols := map[string]int{}
	for i, name := range SuccessRateColumns.Required {
		cols[name] = i
	}
	cols[ColDescription] = len(SuccessRateColumns.Required)
	return cols
}

func successRateRow(date, txType, rc, count, amount, fee, status, desc string) []Cell {
	return []Cell{
		textCell(date), textCell(txType), textCell(rc), textCell(count),
		textCell(amount), textCell(fee), textCell(status), textCell(desc),
	}
}

func TestNormalize_DateFormatsAgree(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	n := &successRateNormalizer{appID: 1, cols: successRateCols(), spreadsheet: true}
	variants := [][]Cell{
		successRateRow("15/01/2024", "QRIS", "00", "10", "100.50", "1", "Sukses", ""),
		successRateRow("2024-01-15", "QRIS", "00", "10", "100.50", "1", "Sukses", ""),
		successRateRow("45306", "QRIS", "00", "10", "100.50", "1", "Sukses", ""),
	}
	variants = append(variants, successRateRow("", "QRIS", "00", "10", "100.50", "1", "Sukses", ""))
	variants[3][0] = Cell{Kind: CellNumber, Text: "45306", Number: 45306}
	variants = append(variants, successRateRow("", "QRIS", "00", "10", "100.50", "1", "Sukses", ""))
	variants[4][0] = Cell{Kind: CellDate, Text: "15/01/2024", Date: want.Add(10 * time.Hour)}

	for _, row := range variants {
		fact, err := n.normalize(row)
		require.NoError(t, err)
		require.True(t, fact.Date.Equal(want), "date %v for cell %+v", fact.Date, row[0])
		require.Equal(t, "1", fact.Month)
		require.Equal(t, 2024, fact.Year)
	}
}

func TestNormalize_MonthHasNoLeadingZero(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}
	fact, err := n.normalize(successRateRow("2024-11-03", "QRIS", "05", "1", "1", "0", "Gagal", ""))
	require.NoError(t, err)
	require.Equal(t, "11", fact.Month)

	fact, err = n.normalize(successRateRow("2024-03-03", "QRIS", "05", "1", "1", "0", "Gagal", ""))
	require.NoError(t, err)
	require.Equal(t, "3", fact.Month)
}

func TestNormalize_InvalidDateIsHardError(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}
	for _, bad := range []string{"31/02/2024", "2024-13-01", "not a date"} {
		_, err := n.normalize(successRateRow(bad, "QRIS", "00", "1", "1", "0", "Sukses", ""))
		require.Error(t, err, "date %q", bad)
	}
}

func TestNormalize_BlankDateAndTypeSkips(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}
	fact, err := n.normalize(successRateRow("", "", "", "", "", "", "", ""))
	require.NoError(t, err)
	require.Nil(t, fact)
}

func TestNormalize_MissingRequiredFieldIsHardError(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}

	_, err := n.normalize(successRateRow("", "QRIS", "00", "1", "1", "0", "Sukses", ""))
	require.ErrorContains(t, err, ColDate)

	_, err = n.normalize(successRateRow("2024-01-15", "", "00", "1", "1", "0", "Sukses", ""))
	require.ErrorContains(t, err, ColTransactionType)
}

func TestNormalize_BlankOptionalFieldsAreNull(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}
	fact, err := n.normalize(successRateRow("2024-01-15", "QRIS", "", "", "", "", "", ""))
	require.NoError(t, err)
	require.Nil(t, fact.RC)
	require.Nil(t, fact.Description)
	require.Nil(t, fact.TotalCount)
	require.Nil(t, fact.TotalAmount)
	require.Nil(t, fact.TotalFee)
	require.Nil(t, fact.Status)
}

func TestNormalize_NonNumericAggregatesAreNull(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}
	fact, err := n.normalize(successRateRow("2024-01-15", "QRIS", "00", "abc", "n/a", "-", "Gagal", ""))
	require.NoError(t, err)
	require.Nil(t, fact.TotalCount)
	require.Nil(t, fact.TotalAmount)
	require.Nil(t, fact.TotalFee)
}

func TestNormalize_SuccessRowDefaultsDescription(t *testing.T) {
	n := &successRateNormalizer{appID: 1, cols: successRateCols()}

	fact, err := n.normalize(successRateRow("2024-01-15", "QRIS", "", "1", "1", "0", "SUKSES", ""))
	require.NoError(t, err)
	require.NotNil(t, fact.Description)
	require.Equal(t, "Success", *fact.Description)
	// Status is persisted verbatim.
	require.Equal(t, "SUKSES", *fact.Status)

	fact, err = n.normalize(successRateRow("2024-01-15", "QRIS", "", "1", "1", "0", "success", "approved"))
	require.NoError(t, err)
	require.Equal(t, "approved", *fact.Description)

	fact, err = n.normalize(successRateRow("2024-01-15", "QRIS", "05", "1", "1", "0", "Gagal", ""))
	require.NoError(t, err)
	require.Nil(t, fact.Description)
}

func TestNormalizeDictionaryRow_FlagAliases(t *testing.T) {
	cols := map[string]int{ColTransactionType: 0, ColRC: 1, ColErrorClass: 2, ColDescription: 3}
	row := func(txType, rc, flag, desc string) []Cell {
		return []Cell{textCell(txType), textCell(rc), textCell(flag), textCell(desc)}
	}

	for flag, want := range map[string]types.ErrorClass{
		"S": types.ErrorClassSoft, "n": types.ErrorClassHard,
		"sukses": types.ErrorClassSuccess, "SUCCESS": types.ErrorClassSuccess,
		"Berhasil": types.ErrorClassSuccess,
	} {
		e := normalizeDictionaryRow(7, row("Transfer", "05", flag, "timeout"), cols)
		require.NotNil(t, e, "flag %q", flag)
		require.Equal(t, want, e.ErrorClass)
		require.Equal(t, int64(7), e.ApplicationID)
		require.Equal(t, "timeout", *e.Description)
	}

	// Unrecognized or blank flags drop the row without erroring.
	require.Nil(t, normalizeDictionaryRow(7, row("Transfer", "05", "maybe", ""), cols))
	require.Nil(t, normalizeDictionaryRow(7, row("Transfer", "05", "", ""), cols))

	// A recognized flag keeps the row even with blank type and code.
	e := normalizeDictionaryRow(7, row("", "", "S", ""), cols)
	require.NotNil(t, e)
	require.Empty(t, e.TransactionType)
	require.Empty(t, e.RC)
}

func TestExcelSerialDate(t *testing.T) {
	d, ok := excelSerialDate(45306)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d)

	// Serials around the phantom 1900 leap day stay on the real calendar.
	d, ok = excelSerialDate(1)
	require.True(t, ok)
	require.Equal(t, time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), d)
	d, ok = excelSerialDate(59)
	require.True(t, ok)
	require.Equal(t, time.Date(1900, time.February, 28, 0, 0, 0, 0, time.UTC), d)
	d, ok = excelSerialDate(61)
	require.True(t, ok)
	require.Equal(t, time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = excelSerialDate(0)
	require.False(t, ok)
}
