// Package application manages the registered application identifiers that
// every dictionary entry and fact row hangs off.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/logctx"
)

var (
	ErrBlankName     = errors.New("application name must not be blank")
	ErrDuplicateName = errors.New("application name already exists")
	ErrNotFound      = errors.New("application not found")
)

type Service struct {
	db  storage.DB
	log *zap.SugaredLogger
}

func NewService(db storage.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) List(ctx context.Context) ([]*models.Application, error) {
	apps, err := s.db.Applications().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *Service) Create(ctx context.Context, name string) (*models.Application, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	app := &models.Application{Name: name}
	if err := s.db.Applications().Create(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("application created", "id", app.ID, "name", app.Name)
	return app, nil
}

// Delete removes an application; dictionary entries, fact rows and parked
// codes follow via FK cascade.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.db.Applications().Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to verify application: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := s.db.Applications().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("application deleted", "id", id)
	return nil
}
