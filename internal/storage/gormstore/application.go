package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/models"
)

type applicationStore struct {
	db *gorm.DB
}

func (s *applicationStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *applicationStore) Get(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *applicationStore) List(ctx context.Context) ([]*models.Application, error) {
	var apps []*models.Application
	if err := s.db.WithContext(ctx).Order("app_name").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *applicationStore) Create(ctx context.Context, app *models.Application) error {
	return s.db.WithContext(ctx).Create(app).Error
}

func (s *applicationStore) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&models.Application{}, id).Error
}
