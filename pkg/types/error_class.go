package types

import "strings"

// ErrorClass is the three-way classification assigned to a response code.
type ErrorClass string

const (
	// ErrorClassSoft marks a soft (retryable/user-side) failure.
	ErrorClassSoft ErrorClass = "S"
	// ErrorClassHard marks a hard (system-side) failure.
	ErrorClassHard ErrorClass = "N"
	// ErrorClassSuccess marks a successful response code.
	ErrorClassSuccess ErrorClass = "Sukses"
)

func (e ErrorClass) Valid() bool {
	switch e {
	case ErrorClassSoft, ErrorClassHard, ErrorClassSuccess:
		return true
	}
	return false
}

// ParseErrorClassFlag maps a dictionary-file success-flag cell to an
// ErrorClass. Accepted aliases for success: SUKSES, SUCCESS, BERHASIL.
// Returns false for anything unrecognized, including blank.
func ParseErrorClassFlag(raw string) (ErrorClass, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "S":
		return ErrorClassSoft, true
	case "N":
		return ErrorClassHard, true
	case "SUKSES", "SUCCESS", "BERHASIL":
		return ErrorClassSuccess, true
	}
	return "", false
}

// IsSuccessStatus reports whether a free-text transaction status counts as a
// success alias for classification purposes. The stored status is never
// rewritten; only the comparison is case-insensitive.
func IsSuccessStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "sukses", "success":
		return true
	}
	return false
}
