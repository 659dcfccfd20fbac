// Package uploadlog keeps a best-effort audit trail of upload attempts.
// Failures here never fail the upload itself.
package uploadlog

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/pkg/logctx"
)

// Recorder is what the ingestion service depends on; tests substitute a
// no-op implementation.
type Recorder interface {
	Record(ctx context.Context, rec *models.UploadLog)
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Record asynchronously persists an upload audit record. Nil input is ignored.
func (s *Service) Record(ctx context.Context, rec *models.UploadLog) {
	go func() {
		if rec == nil {
			return
		}
		if err := s.db.Create(rec).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save upload log: %v", err)
		}
	}()
}
