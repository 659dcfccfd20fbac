package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBind_ExactRequiredAnyOrderAnyCase(t *testing.T) {
	headers := []string{"status transaksi", "RC", "TOTAL TRANSAKSI", "tanggal transaksi", "Jenis Transaksi", "total nominal", "Total Biaya Admin"}
	bound, err := SuccessRateColumns.Bind(headers)
	require.NoError(t, err)
	require.Equal(t, 3, bound[ColDate])
	require.Equal(t, 4, bound[ColTransactionType])
	require.Equal(t, 1, bound[ColRC])
	require.NotContains(t, bound, ColDescription)
}

func TestBind_OptionalBoundWhenPresent(t *testing.T) {
	headers := append([]string{}, SuccessRateColumns.Required...)
	headers = append(headers, "rc description")
	bound, err := SuccessRateColumns.Bind(headers)
	require.NoError(t, err)
	require.Equal(t, 7, bound[ColDescription])
}

func TestBind_OneColumnShort(t *testing.T) {
	headers := SuccessRateColumns.Required[:6]
	_, err := SuccessRateColumns.Bind(headers)
	var cce *ColumnCountError
	require.ErrorAs(t, err, &cce)
	require.Equal(t, 6, cce.Got)
	require.Contains(t, err.Error(), "Expected 7-8 columns")
	require.Contains(t, err.Error(), ColDate)
	require.Contains(t, err.Error(), "Optional: "+ColDescription)
}

func TestBind_TooManyColumns(t *testing.T) {
	headers := append(append([]string{}, SuccessRateColumns.Required...), "RC Description", "Extra")
	_, err := SuccessRateColumns.Bind(headers)
	var cce *ColumnCountError
	require.ErrorAs(t, err, &cce)
	require.Equal(t, 9, cce.Got)
}

func TestBind_MisspelledRequiredColumn(t *testing.T) {
	headers := append([]string{}, SuccessRateColumns.Required...)
	headers[2] = "RCs"
	_, err := SuccessRateColumns.Bind(headers)
	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	require.Equal(t, []string{ColRC}, mce.Missing)
	require.Contains(t, err.Error(), "Missing required columns: RC")
}

func TestBind_DictionaryLayout(t *testing.T) {
	bound, err := DictionaryColumns.Bind([]string{"jenis transaksi", "rc", "s/n"})
	require.NoError(t, err)
	require.Len(t, bound, 3)

	_, err = DictionaryColumns.Bind([]string{"jenis transaksi", "rc"})
	var cce *ColumnCountError
	require.ErrorAs(t, err, &cce)
	require.Contains(t, err.Error(), "Expected 3-4 columns")
}
