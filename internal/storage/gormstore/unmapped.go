package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kurniadi/rcdash/internal/models"
)

type unmappedStore struct {
	db *gorm.DB
}

func (s *unmappedStore) Upsert(ctx context.Context, rec *models.UnmappedCode) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id_app_identifier"}, {Name: "jenis_transaksi"}, {Name: "rc"}},
		DoUpdates: clause.AssignmentColumns([]string{"rc_description", "status_transaksi"}),
	}).Create(rec).Error
}

func (s *unmappedStore) Get(ctx context.Context, id int64) (*models.UnmappedCode, error) {
	var rec models.UnmappedCode
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *unmappedStore) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&models.UnmappedCode{}, id).Error
}

func (s *unmappedStore) List(ctx context.Context, appID *int64) ([]*models.UnmappedCode, error) {
	tx := s.db.WithContext(ctx).Model(&models.UnmappedCode{})
	if appID != nil {
		tx = tx.Where("id_app_identifier = ?", *appID)
	}
	var rows []*models.UnmappedCode
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
