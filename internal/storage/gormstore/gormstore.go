// Package gormstore implements the storage interfaces on Postgres via gorm.
package gormstore

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/storage"
)

type DB struct {
	db *gorm.DB
}

func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

var _ storage.DB = (*DB)(nil)

func (d *DB) Applications() storage.ApplicationStore { return &applicationStore{db: d.db} }
func (d *DB) Dictionary() storage.DictionaryStore    { return &dictionaryStore{db: d.db} }
func (d *DB) Unmapped() storage.UnmappedStore        { return &unmappedStore{db: d.db} }
func (d *DB) Facts() storage.FactStore               { return &factStore{db: d.db} }

// InTx runs fn against transaction-bound stores; any error rolls the whole
// transaction back, including panics unwound through gorm.
func (d *DB) InTx(ctx context.Context, fn func(storage.Stores) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{db: tx})
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(func(d *DB) storage.DB { return d }),
	fx.Invoke(func(d *DB) error { return d.SeedDefaults(context.Background()) }),
)
