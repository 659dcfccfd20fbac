package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorClassFlag(t *testing.T) {
	for raw, want := range map[string]ErrorClass{
		"S": ErrorClassSoft, "s": ErrorClassSoft,
		"N": ErrorClassHard, " n ": ErrorClassHard,
		"SUKSES": ErrorClassSuccess, "Success": ErrorClassSuccess, "berhasil": ErrorClassSuccess,
	} {
		got, ok := ParseErrorClassFlag(raw)
		require.True(t, ok, "flag %q", raw)
		require.Equal(t, want, got)
	}

	for _, raw := range []string{"", "X", "ok", "0"} {
		_, ok := ParseErrorClassFlag(raw)
		require.False(t, ok, "flag %q", raw)
	}
}

func TestIsSuccessStatus(t *testing.T) {
	require.True(t, IsSuccessStatus("sukses"))
	require.True(t, IsSuccessStatus(" SUCCESS "))
	require.False(t, IsSuccessStatus("berhasil"))
	require.False(t, IsSuccessStatus(""))
}
