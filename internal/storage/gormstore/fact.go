package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/types"
)

type factStore struct {
	db *gorm.DB
}

func (s *factStore) InsertBatch(ctx context.Context, rows []*models.SuccessRateFact) error {
	if len(rows) == 0 {
		return nil
	}
	// CreateInBatches keeps source-row order within the transaction.
	return s.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

func (s *factStore) Get(ctx context.Context, id int64) (*models.SuccessRateFact, error) {
	var fact models.SuccessRateFact
	if err := s.db.WithContext(ctx).First(&fact, id).Error; err != nil {
		return nil, err
	}
	return &fact, nil
}

func (s *factStore) PatchErrorClass(ctx context.Context, appID int64, txType, rc string, class types.ErrorClass) (int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.SuccessRateFact{}).
		Where("id_app_identifier = ? AND rc = ? AND error_type IS NULL", appID, rc)
	if txType != "" {
		tx = tx.Where("jenis_transaksi = ?", txType)
	}
	res := tx.Update("error_type", class)
	return res.RowsAffected, res.Error
}

func (s *factStore) PatchDescription(ctx context.Context, appID int64, txType, rc string, desc *string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.SuccessRateFact{}).
		Where("id_app_identifier = ? AND jenis_transaksi = ? AND rc = ?", appID, txType, rc).
		Update("rc_description", desc)
	return res.RowsAffected, res.Error
}

func (s *factStore) AssignRC(ctx context.Context, id int64, rc string, desc *string) error {
	return s.db.WithContext(ctx).
		Model(&models.SuccessRateFact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rc": rc, "rc_description": desc}).Error
}

func (s *factStore) ListNoRC(ctx context.Context, p storage.ListParams) ([]*models.SuccessRateFact, int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.SuccessRateFact{}).
		Where("rc IS NULL").
		Where("status_transaksi IS NULL OR LOWER(status_transaksi) NOT IN ('sukses', 'success')")
	if p.ApplicationID != nil {
		tx = tx.Where("id_app_identifier = ?", *p.ApplicationID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := tx.Order("created_at DESC")
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}

	var rows []*models.SuccessRateFact
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
