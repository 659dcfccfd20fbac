// Package storage defines the persistence interfaces consumed by the
// ingestion and reconciliation services. Implementations: gormstore
// (Postgres) and memstore (in-memory, for tests).
package storage

import (
	"context"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/pkg/types"
)

// Stores bundles the per-table stores that share one transaction scope.
type Stores interface {
	Applications() ApplicationStore
	Dictionary() DictionaryStore
	Unmapped() UnmappedStore
	Facts() FactStore
}

// DB is the root handle: direct (auto-commit) store access plus InTx, which
// runs fn against transaction-bound stores and rolls everything back when fn
// returns an error.
type DB interface {
	Stores
	InTx(ctx context.Context, fn func(Stores) error) error
}

type ApplicationStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Get(ctx context.Context, id int64) (*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id int64) error
}

type DictionaryStore interface {
	// FindByAppTypeCode is the exact-match lookup tier. Returns (nil, nil)
	// when no entry matches.
	FindByAppTypeCode(ctx context.Context, appID int64, txType, rc string) (*models.DictionaryEntry, error)
	// FindByAppCode is the fallback tier, ignoring transaction type. When
	// several entries share the code the one with the lowest id wins.
	FindByAppCode(ctx context.Context, appID int64, rc string) (*models.DictionaryEntry, error)
	// Upsert inserts or updates on (app, type, rc). Error class always takes
	// the new value; a nil incoming description preserves the stored one.
	Upsert(ctx context.Context, entry *models.DictionaryEntry) error
	Get(ctx context.Context, id int64) (*models.DictionaryEntry, error)
	UpdateErrorClass(ctx context.Context, id int64, class types.ErrorClass) error
	UpdateDescription(ctx context.Context, id int64, desc *string) error
	List(ctx context.Context, p ListParams) ([]*models.DictionaryEntry, int64, error)
}

type UnmappedStore interface {
	// Upsert is idempotent on (app, type, rc); description and status are
	// last-write-wins.
	Upsert(ctx context.Context, rec *models.UnmappedCode) error
	Get(ctx context.Context, id int64) (*models.UnmappedCode, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, appID *int64) ([]*models.UnmappedCode, error)
}

type FactStore interface {
	// InsertBatch persists rows preserving slice order.
	InsertBatch(ctx context.Context, rows []*models.SuccessRateFact) error
	Get(ctx context.Context, id int64) (*models.SuccessRateFact, error)
	// PatchErrorClass sets the class on every fact row matching
	// (appID, rc[, txType]) whose class is still NULL. An empty txType
	// matches any transaction type. Returns the number of patched rows.
	PatchErrorClass(ctx context.Context, appID int64, txType, rc string, class types.ErrorClass) (int64, error)
	// PatchDescription propagates a dictionary description edit onto every
	// fact row matching (appID, txType, rc). Returns the number of updated
	// rows.
	PatchDescription(ctx context.Context, appID int64, txType, rc string, desc *string) (int64, error)
	// AssignRC writes a response code (and optional description) onto one
	// fact row.
	AssignRC(ctx context.Context, id int64, rc string, desc *string) error
	// ListNoRC pages through fact rows with no response code whose status is
	// not a success alias: the operator's "transactions without RC" queue.
	ListNoRC(ctx context.Context, p ListParams) ([]*models.SuccessRateFact, int64, error)
}

// ListParams is shared pagination/filtering for operator-facing listings.
type ListParams struct {
	ApplicationID *int64
	Offset        int
	Limit         int
}
