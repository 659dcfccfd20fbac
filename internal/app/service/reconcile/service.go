// Package reconcile implements the operator resolution flows: mapping parked
// response codes, assigning codes to code-less fact rows, and editing
// dictionary entries with retroactive propagation.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/app/service/classify"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/logctx"
	"github.com/kurniadi/rcdash/pkg/types"
)

var (
	ErrInvalidErrorClass = errors.New("error class must be S, N or Sukses")
	ErrBlankRC           = errors.New("response code must not be blank")
	ErrNotFound          = errors.New("record not found")
)

type Service struct {
	db       storage.DB
	resolver *classify.Resolver
	log      *zap.SugaredLogger
}

func NewService(db storage.DB, resolver *classify.Resolver, log *zap.SugaredLogger) *Service {
	return &Service{db: db, resolver: resolver, log: log}
}

// UnmappedResolution is one operator decision for a parked code.
type UnmappedResolution struct {
	ID         int64            `json:"id"`
	ErrorClass types.ErrorClass `json:"error_type"`
}

// BatchReport summarizes a batch resolution: items are processed
// independently, each in its own transaction.
type BatchReport struct {
	Resolved int            `json:"resolved"`
	Failures []BatchFailure `json:"failures,omitempty"`
}

type BatchFailure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// ResolveUnmapped maps one parked code: the dictionary gains the entry, all
// still-unclassified fact rows with the same key are patched, and the parked
// record is removed. A blank transaction type on the parked record widens
// the patch to every transaction type.
func (s *Service) ResolveUnmapped(ctx context.Context, id int64, class types.ErrorClass) error {
	if !class.Valid() {
		return ErrInvalidErrorClass
	}
	return s.db.InTx(ctx, func(stores storage.Stores) error {
		rec, err := stores.Unmapped().Get(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: unmapped code %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load unmapped code: %w", err)
		}

		entry := &models.DictionaryEntry{
			ApplicationID:   rec.ApplicationID,
			TransactionType: rec.TransactionType,
			RC:              rec.RC,
			Description:     rec.Description,
			ErrorClass:      class,
		}
		if err := stores.Dictionary().Upsert(ctx, entry); err != nil {
			return fmt.Errorf("failed to upsert dictionary entry: %w", err)
		}

		patched, err := stores.Facts().PatchErrorClass(ctx, rec.ApplicationID, rec.TransactionType, rec.RC, class)
		if err != nil {
			return fmt.Errorf("failed to patch fact rows: %w", err)
		}

		if err := stores.Unmapped().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete unmapped code: %w", err)
		}

		logctx.FromCtx(ctx, s.log).Infow("unmapped code resolved",
			"application_id", rec.ApplicationID, "rc", rec.RC,
			"error_class", class, "patched_rows", patched)
		return nil
	})
}

// ResolveUnmappedBatch resolves each item independently; one failing item
// does not roll back the others.
func (s *Service) ResolveUnmappedBatch(ctx context.Context, items []UnmappedResolution) *BatchReport {
	report := &BatchReport{}
	for _, item := range items {
		if err := s.ResolveUnmapped(ctx, item.ID, item.ErrorClass); err != nil {
			report.Failures = append(report.Failures, BatchFailure{ID: item.ID, Reason: err.Error()})
			continue
		}
		report.Resolved++
	}
	return report
}

// AssignRC writes a response code onto a code-less fact row and immediately
// runs classification with the new code: a dictionary hit classifies the row
// (and any siblings still unclassified), a miss parks the code.
func (s *Service) AssignRC(ctx context.Context, factID int64, rc string, desc *string) error {
	rc = strings.TrimSpace(rc)
	if rc == "" {
		return ErrBlankRC
	}
	return s.db.InTx(ctx, func(stores storage.Stores) error {
		fact, err := stores.Facts().Get(ctx, factID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: fact row %d", ErrNotFound, factID)
			}
			return fmt.Errorf("failed to load fact row: %w", err)
		}

		if err := stores.Facts().AssignRC(ctx, factID, rc, desc); err != nil {
			return fmt.Errorf("failed to assign response code: %w", err)
		}

		class, err := s.resolver.Resolve(ctx, stores, classify.Row{
			ApplicationID:   fact.ApplicationID,
			TransactionType: fact.TransactionType,
			RC:              &rc,
			Description:     desc,
			Status:          fact.Status,
		})
		if err != nil {
			return err
		}
		if class != nil {
			if _, err := stores.Facts().PatchErrorClass(ctx, fact.ApplicationID, fact.TransactionType, rc, *class); err != nil {
				return fmt.Errorf("failed to patch fact rows: %w", err)
			}
		}

		logctx.FromCtx(ctx, s.log).Infow("response code assigned",
			"fact_id", factID, "rc", rc, "classified", class != nil)
		return nil
	})
}

// UpdateDictionaryClass changes an entry's error class and patches every
// still-unclassified fact row sharing the entry's key.
func (s *Service) UpdateDictionaryClass(ctx context.Context, id int64, class types.ErrorClass) error {
	if !class.Valid() {
		return ErrInvalidErrorClass
	}
	return s.db.InTx(ctx, func(stores storage.Stores) error {
		entry, err := stores.Dictionary().Get(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: dictionary entry %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load dictionary entry: %w", err)
		}
		if err := stores.Dictionary().UpdateErrorClass(ctx, id, class); err != nil {
			return fmt.Errorf("failed to update dictionary entry: %w", err)
		}
		if _, err := stores.Facts().PatchErrorClass(ctx, entry.ApplicationID, entry.TransactionType, entry.RC, class); err != nil {
			return fmt.Errorf("failed to patch fact rows: %w", err)
		}
		return nil
	})
}

// UpdateDictionaryDescription edits an entry's description and propagates it
// onto every fact row sharing the entry's key, classified or not.
func (s *Service) UpdateDictionaryDescription(ctx context.Context, id int64, desc *string) error {
	return s.db.InTx(ctx, func(stores storage.Stores) error {
		entry, err := stores.Dictionary().Get(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: dictionary entry %d", ErrNotFound, id)
			}
			return fmt.Errorf("failed to load dictionary entry: %w", err)
		}
		if err := stores.Dictionary().UpdateDescription(ctx, id, desc); err != nil {
			return fmt.Errorf("failed to update dictionary entry: %w", err)
		}
		if _, err := stores.Facts().PatchDescription(ctx, entry.ApplicationID, entry.TransactionType, entry.RC, desc); err != nil {
			return fmt.Errorf("failed to propagate description: %w", err)
		}
		return nil
	})
}

// DescriptionUpdate is one item of a batch description edit.
type DescriptionUpdate struct {
	ID          int64   `json:"id"`
	Description *string `json:"rc_description"`
}

func (s *Service) UpdateDictionaryDescriptionBatch(ctx context.Context, items []DescriptionUpdate) *BatchReport {
	report := &BatchReport{}
	for _, item := range items {
		if err := s.UpdateDictionaryDescription(ctx, item.ID, item.Description); err != nil {
			report.Failures = append(report.Failures, BatchFailure{ID: item.ID, Reason: err.Error()})
			continue
		}
		report.Resolved++
	}
	return report
}
