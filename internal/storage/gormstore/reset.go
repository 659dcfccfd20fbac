package gormstore

import (
	"context"

	"github.com/kurniadi/rcdash/internal/models"
)

// DefaultApplications are seeded after a schema reset.
var DefaultApplications = []string{
	"Bale",
	"CMS",
	"SMS Notif",
	"QRIS",
	"EDC Merchant",
	"EDC Agent",
	"Bale Korpora",
}

// Reset drops every domain table, recreates the schema and seeds the default
// applications. Destructive; exposed only through the admin surface.
func (d *DB) Reset(ctx context.Context) error {
	db := d.db.WithContext(ctx)

	if err := db.Migrator().DropTable(
		&models.UploadLog{},
		&models.UnmappedCode{},
		&models.SuccessRateFact{},
		&models.DictionaryEntry{},
		&models.Application{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.Application{},
		&models.DictionaryEntry{},
		&models.SuccessRateFact{},
		&models.UnmappedCode{},
		&models.UploadLog{},
	); err != nil {
		return err
	}

	apps := make([]*models.Application, 0, len(DefaultApplications))
	for _, name := range DefaultApplications {
		apps = append(apps, &models.Application{Name: name})
	}
	return db.Create(apps).Error
}

// SeedDefaults inserts the default applications on a fresh database. A
// non-empty table is left untouched.
func (d *DB) SeedDefaults(ctx context.Context) error {
	var n int64
	if err := d.db.WithContext(ctx).Model(&models.Application{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	apps := make([]*models.Application, 0, len(DefaultApplications))
	for _, name := range DefaultApplications {
		apps = append(apps, &models.Application{Name: name})
	}
	return d.db.WithContext(ctx).Create(apps).Error
}

// Ping verifies database connectivity for the status endpoint.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
