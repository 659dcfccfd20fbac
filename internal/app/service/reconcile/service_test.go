package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kurniadi/rcdash/internal/app/service/classify"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage/memstore"
	"github.com/kurniadi/rcdash/pkg/types"
)

func strp(s string) *string { return &s }

func newTestService(db *memstore.DB) *Service {
	log := zap.NewNop().Sugar()
	return NewService(db, classify.NewResolver(log), log)
}

func seedFact(t *testing.T, db *memstore.DB, appID int64, txType string, rc *string, status *string) int64 {
	t.Helper()
	fact := &models.SuccessRateFact{
		ApplicationID:   appID,
		Date:            time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Month:           "1",
		Year:            2024,
		TransactionType: txType,
		RC:              rc,
		Status:          status,
	}
	require.NoError(t, db.Facts().InsertBatch(context.Background(), []*models.SuccessRateFact{fact}))
	return fact.ID
}

func seedUnmapped(t *testing.T, db *memstore.DB, appID int64, txType, rc string) int64 {
	t.Helper()
	rec := &models.UnmappedCode{ApplicationID: appID, TransactionType: txType, RC: rc, Description: strp("seen in upload")}
	require.NoError(t, db.Unmapped().Upsert(context.Background(), rec))
	return rec.ID
}

func TestResolveUnmapped_MapsPatchesAndRemoves(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	factID := seedFact(t, db, appID, "Transfer", strp("99"), strp("Gagal"))
	otherID := seedFact(t, db, appID, "Payment", strp("99"), strp("Gagal"))
	unmappedID := seedUnmapped(t, db, appID, "Transfer", "99")
	svc := newTestService(db)

	require.NoError(t, svc.ResolveUnmapped(context.Background(), unmappedID, types.ErrorClassHard))

	entries := db.AllDictionary()
	require.Len(t, entries, 1)
	require.Equal(t, types.ErrorClassHard, entries[0].ErrorClass)
	require.Equal(t, "seen in upload", *entries[0].Description)

	for _, f := range db.AllFacts() {
		switch f.ID {
		case factID:
			require.Equal(t, types.ErrorClassHard, *f.ErrorClass)
		case otherID:
			// Different transaction type, untouched.
			require.Nil(t, f.ErrorClass)
		}
	}
	require.Empty(t, db.AllUnmapped())
}

func TestResolveUnmapped_BlankTypeWidensPatch(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	seedFact(t, db, appID, "Transfer", strp("99"), nil)
	seedFact(t, db, appID, "Payment", strp("99"), nil)
	unmappedID := seedUnmapped(t, db, appID, "", "99")
	svc := newTestService(db)

	require.NoError(t, svc.ResolveUnmapped(context.Background(), unmappedID, types.ErrorClassSoft))

	for _, f := range db.AllFacts() {
		require.NotNil(t, f.ErrorClass)
		require.Equal(t, types.ErrorClassSoft, *f.ErrorClass)
	}
}

func TestResolveUnmapped_Validation(t *testing.T) {
	db := memstore.New()
	svc := newTestService(db)

	require.ErrorIs(t, svc.ResolveUnmapped(context.Background(), 1, "X"), ErrInvalidErrorClass)
	require.ErrorIs(t, svc.ResolveUnmapped(context.Background(), 404, types.ErrorClassSoft), ErrNotFound)
}

func TestResolveUnmappedBatch_ItemsAreIndependent(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	goodID := seedUnmapped(t, db, appID, "Transfer", "91")
	svc := newTestService(db)

	report := svc.ResolveUnmappedBatch(context.Background(), []UnmappedResolution{
		{ID: goodID, ErrorClass: types.ErrorClassSoft},
		{ID: 12345, ErrorClass: types.ErrorClassSoft},
	})
	require.Equal(t, 1, report.Resolved)
	require.Len(t, report.Failures, 1)
	require.Equal(t, int64(12345), report.Failures[0].ID)
	require.Len(t, db.AllDictionary(), 1)
}

func TestAssignRC_DictionaryHitClassifies(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	db.SeedDictionary(appID, "Transfer", "05", types.ErrorClassSoft)
	factID := seedFact(t, db, appID, "Transfer", nil, strp("Gagal"))
	svc := newTestService(db)

	require.NoError(t, svc.AssignRC(context.Background(), factID, "05", strp("timeout")))

	facts := db.AllFacts()
	require.Equal(t, "05", *facts[0].RC)
	require.Equal(t, "timeout", *facts[0].Description)
	require.Equal(t, types.ErrorClassSoft, *facts[0].ErrorClass)
	require.Empty(t, db.AllUnmapped())
}

func TestAssignRC_DictionaryMissParks(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	factID := seedFact(t, db, appID, "Transfer", nil, strp("Gagal"))
	svc := newTestService(db)

	require.NoError(t, svc.AssignRC(context.Background(), factID, "77", nil))

	facts := db.AllFacts()
	require.Equal(t, "77", *facts[0].RC)
	require.Nil(t, facts[0].ErrorClass)

	parked := db.AllUnmapped()
	require.Len(t, parked, 1)
	require.Equal(t, "77", parked[0].RC)
}

func TestAssignRC_Validation(t *testing.T) {
	db := memstore.New()
	svc := newTestService(db)

	require.ErrorIs(t, svc.AssignRC(context.Background(), 1, "  ", nil), ErrBlankRC)
	require.ErrorIs(t, svc.AssignRC(context.Background(), 404, "05", nil), ErrNotFound)
}

func TestUpdateDictionaryClass_PatchesUnclassifiedFacts(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	entryID := db.SeedDictionary(appID, "Transfer", "05", types.ErrorClassSoft)
	pendingID := seedFact(t, db, appID, "Transfer", strp("05"), nil)

	classified := types.ErrorClassSoft
	classifiedFact := &models.SuccessRateFact{
		ApplicationID: appID, Date: time.Now(), Month: "1", Year: 2024,
		TransactionType: "Transfer", RC: strp("05"), ErrorClass: &classified,
	}
	require.NoError(t, db.Facts().InsertBatch(context.Background(), []*models.SuccessRateFact{classifiedFact}))

	svc := newTestService(db)
	require.NoError(t, svc.UpdateDictionaryClass(context.Background(), entryID, types.ErrorClassHard))

	entries := db.AllDictionary()
	require.Equal(t, types.ErrorClassHard, entries[0].ErrorClass)

	for _, f := range db.AllFacts() {
		if f.ID == pendingID {
			require.Equal(t, types.ErrorClassHard, *f.ErrorClass)
		} else {
			// Already-classified rows keep their class.
			require.Equal(t, types.ErrorClassSoft, *f.ErrorClass)
		}
	}
}

func TestUpdateDictionaryDescription_PropagatesToFacts(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	entryID := db.SeedDictionary(appID, "Transfer", "05", types.ErrorClassSoft)
	seedFact(t, db, appID, "Transfer", strp("05"), nil)
	seedFact(t, db, appID, "Payment", strp("05"), nil)
	svc := newTestService(db)

	require.NoError(t, svc.UpdateDictionaryDescription(context.Background(), entryID, strp("insufficient funds")))

	entries := db.AllDictionary()
	require.Equal(t, "insufficient funds", *entries[0].Description)

	for _, f := range db.AllFacts() {
		if f.TransactionType == "Transfer" {
			require.Equal(t, "insufficient funds", *f.Description)
		} else {
			require.Nil(t, f.Description)
		}
	}
}

func TestUpdateDictionaryDescriptionBatch(t *testing.T) {
	db := memstore.New()
	appID := db.SeedApplication("QRIS")
	entryID := db.SeedDictionary(appID, "Transfer", "05", types.ErrorClassSoft)
	svc := newTestService(db)

	report := svc.UpdateDictionaryDescriptionBatch(context.Background(), []DescriptionUpdate{
		{ID: entryID, Description: strp("timeout")},
		{ID: 9999, Description: strp("nope")},
	})
	require.Equal(t, 1, report.Resolved)
	require.Len(t, report.Failures, 1)
}
