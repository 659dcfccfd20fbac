package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/types"
)

type dictionaryStore struct {
	db *gorm.DB
}

func (s *dictionaryStore) FindByAppTypeCode(ctx context.Context, appID int64, txType, rc string) (*models.DictionaryEntry, error) {
	var entry models.DictionaryEntry
	err := s.db.WithContext(ctx).
		Where("id_app_identifier = ? AND jenis_transaksi = ? AND rc = ?", appID, txType, rc).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s *dictionaryStore) FindByAppCode(ctx context.Context, appID int64, rc string) (*models.DictionaryEntry, error) {
	var entry models.DictionaryEntry
	// Lowest id wins when several transaction types share the code.
	err := s.db.WithContext(ctx).
		Where("id_app_identifier = ? AND rc = ?", appID, rc).
		Order("id").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s *dictionaryStore) Upsert(ctx context.Context, entry *models.DictionaryEntry) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id_app_identifier"}, {Name: "jenis_transaksi"}, {Name: "rc"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"error_type":     entry.ErrorClass,
			"rc_description": gorm.Expr("COALESCE(EXCLUDED.rc_description, response_code_dictionary.rc_description)"),
		}),
	}).Create(entry).Error
}

func (s *dictionaryStore) Get(ctx context.Context, id int64) (*models.DictionaryEntry, error) {
	var entry models.DictionaryEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *dictionaryStore) UpdateErrorClass(ctx context.Context, id int64, class types.ErrorClass) error {
	return s.db.WithContext(ctx).
		Model(&models.DictionaryEntry{}).
		Where("id = ?", id).
		Update("error_type", class).Error
}

func (s *dictionaryStore) UpdateDescription(ctx context.Context, id int64, desc *string) error {
	return s.db.WithContext(ctx).
		Model(&models.DictionaryEntry{}).
		Where("id = ?", id).
		Update("rc_description", desc).Error
}

func (s *dictionaryStore) List(ctx context.Context, p storage.ListParams) ([]*models.DictionaryEntry, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.DictionaryEntry{})
	if p.ApplicationID != nil {
		tx = tx.Where("id_app_identifier = ?", *p.ApplicationID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := tx.Order("rc, jenis_transaksi")
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}

	var rows []*models.DictionaryEntry
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
