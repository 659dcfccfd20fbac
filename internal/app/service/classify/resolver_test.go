package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kurniadi/rcdash/internal/storage/memstore"
	"github.com/kurniadi/rcdash/pkg/types"
)

func strp(s string) *string { return &s }

func newResolver() *Resolver { return NewResolver(zap.NewNop().Sugar()) }

func TestResolve_ExactMatchWinsOverFallback(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	db.SeedDictionary(appID, "Payment", "05", types.ErrorClassHard)
	db.SeedDictionary(appID, "Transfer", "05", types.ErrorClassSoft)

	class, err := newResolver().Resolve(context.Background(), db, Row{
		ApplicationID: appID, TransactionType: "Transfer", RC: strp("05"),
	})
	require.NoError(t, err)
	require.Equal(t, types.ErrorClassSoft, *class)
	require.Empty(t, db.AllUnmapped())
}

func TestResolve_FallbackIgnoresTransactionType(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	db.SeedDictionary(appID, "Payment", "05", types.ErrorClassHard)
	db.SeedDictionary(appID, "Inquiry", "05", types.ErrorClassSoft)

	// No entry for Transfer; the earliest entry with the code wins.
	class, err := newResolver().Resolve(context.Background(), db, Row{
		ApplicationID: appID, TransactionType: "Transfer", RC: strp("05"),
	})
	require.NoError(t, err)
	require.Equal(t, types.ErrorClassHard, *class)
}

func TestResolve_UnknownCodeParks(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")

	class, err := newResolver().Resolve(context.Background(), db, Row{
		ApplicationID:   appID,
		TransactionType: "Transfer",
		RC:              strp("99"),
		Description:     strp("unknown failure"),
		Status:          strp("Gagal"),
	})
	require.NoError(t, err)
	require.Nil(t, class)

	parked := db.AllUnmapped()
	require.Len(t, parked, 1)
	require.Equal(t, "99", parked[0].RC)
	require.Equal(t, "Transfer", parked[0].TransactionType)
	require.Equal(t, "unknown failure", *parked[0].Description)
	require.Equal(t, "Gagal", *parked[0].Status)
}

func TestResolve_ParkingIsIdempotentAndLastWriteWins(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	r := newResolver()

	for _, desc := range []string{"first", "second"} {
		_, err := r.Resolve(context.Background(), db, Row{
			ApplicationID: appID, TransactionType: "Transfer", RC: strp("99"), Description: strp(desc),
		})
		require.NoError(t, err)
	}

	parked := db.AllUnmapped()
	require.Len(t, parked, 1)
	require.Equal(t, "second", *parked[0].Description)
}

func TestResolve_BlankCodeSuccessStatus(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")

	for _, status := range []string{"sukses", "SUCCESS", "Sukses"} {
		class, err := newResolver().Resolve(context.Background(), db, Row{
			ApplicationID: appID, TransactionType: "Transfer", Status: strp(status),
		})
		require.NoError(t, err)
		require.Equal(t, types.ErrorClassSuccess, *class)
	}
	require.Empty(t, db.AllUnmapped())
}

func TestResolve_BlankCodeOtherStatusStaysNull(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")

	class, err := newResolver().Resolve(context.Background(), db, Row{
		ApplicationID: appID, TransactionType: "Transfer", Status: strp("Pending"),
	})
	require.NoError(t, err)
	require.Nil(t, class)
	require.Empty(t, db.AllUnmapped())

	class, err = newResolver().Resolve(context.Background(), db, Row{
		ApplicationID: appID, TransactionType: "Transfer", RC: strp("  "),
	})
	require.NoError(t, err)
	require.Nil(t, class)
	require.Empty(t, db.AllUnmapped())
}
