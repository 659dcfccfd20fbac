package ingest

// Canonical header names as they appear in operator-authored files. Binding
// is case-insensitive, so casing here only affects error messages.
const (
	ColDate            = "Tanggal Transaksi"
	ColTransactionType = "Jenis Transaksi"
	ColRC              = "RC"
	ColCount           = "total transaksi"
	ColAmount          = "Total Nominal"
	ColFee             = "Total Biaya Admin"
	ColStatus          = "Status Transaksi"
	ColDescription     = "RC Description"
	ColErrorClass      = "S/N"
)

// SuccessRateColumns is the layout for success-rate fact uploads.
var SuccessRateColumns = ColumnSpec{
	Required: []string{ColDate, ColTransactionType, ColRC, ColCount, ColAmount, ColFee, ColStatus},
	Optional: []string{ColDescription},
}

// DictionaryColumns is the layout for response-code dictionary uploads.
var DictionaryColumns = ColumnSpec{
	Required: []string{ColTransactionType, ColRC, ColErrorClass},
	Optional: []string{ColDescription},
}

// defaultDescription is recorded for success rows that arrive without one.
const defaultDescription = "Success"

// defaultSuccessRC backfills the response code of success rows whose RC
// column is blank.
const defaultSuccessRC = "00"
