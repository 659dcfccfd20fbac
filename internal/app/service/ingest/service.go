// Package ingest implements the upload pipeline: file parsing, column
// binding, row normalization, classification and the all-or-nothing commit.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/kurniadi/rcdash/internal/app/service/classify"
	"github.com/kurniadi/rcdash/internal/app/service/uploadlog"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/config"
	"github.com/kurniadi/rcdash/pkg/logctx"
	"github.com/kurniadi/rcdash/pkg/metrics"
	"github.com/kurniadi/rcdash/pkg/types"
)

type Service struct {
	db       storage.DB
	resolver *classify.Resolver
	logs     uploadlog.Recorder
	log      *zap.SugaredLogger
	cfg      config.UploadConfig
}

func NewService(db storage.DB, resolver *classify.Resolver, logs uploadlog.Recorder, log *zap.SugaredLogger, cfg *config.Config) *Service {
	return &Service{db: db, resolver: resolver, logs: logs, log: log, cfg: cfg.Upload}
}

// DictionaryReport summarizes a committed dictionary upload.
type DictionaryReport struct {
	TotalProcessed int `json:"totalProcessed"`
	// TotalSkipped counts rows whose success-flag cell was unrecognized.
	TotalSkipped int `json:"totalSkipped"`
}

// SuccessRateReport summarizes a committed success-rate upload.
type SuccessRateReport struct {
	TotalProcessed int `json:"totalProcessed"`
}

// UploadDictionary ingests a dictionary workbook for one application. Each
// recognized row is upserted on (application, transaction type, rc), so
// re-uploading the same file is idempotent.
func (s *Service) UploadDictionary(ctx context.Context, appID int64, fileName string, data []byte) (*DictionaryReport, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xls":
	default:
		return nil, fmt.Errorf("%w: dictionary upload accepts .xlsx or .xls", ErrUnsupportedFile)
	}

	if err := s.requireApplication(ctx, appID); err != nil {
		return nil, err
	}

	table, err := Parse(fileName, data)
	if err != nil {
		return nil, err
	}
	cols, err := DictionaryColumns.Bind(table.Headers)
	if err != nil {
		return nil, err
	}

	var entries []*models.DictionaryEntry
	skipped := 0
	consecutiveEmpty := 0
	for _, row := range table.Rows {
		blank := dictionaryRowBlank(row, cols)
		if s.stopScanning(table, &consecutiveEmpty, blank) {
			break
		}
		if blank {
			continue
		}
		entry := normalizeDictionaryRow(appID, row, cols)
		if entry == nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	err = s.db.InTx(ctx, func(stores storage.Stores) error {
		for _, entry := range entries {
			if err := stores.Dictionary().Upsert(ctx, entry); err != nil {
				return fmt.Errorf("failed to upsert dictionary entry (%s, %s): %w", entry.TransactionType, entry.RC, err)
			}
		}
		return nil
	})
	if err != nil {
		s.record(ctx, appID, types.UploadKindDictionary, fileName, types.UploadStatusFailed, len(entries), skipped, &models.UploadLogDetail{Error: err.Error()})
		metrics.UploadCnt.WithLabelValues(string(types.UploadKindDictionary), string(types.UploadStatusFailed)).Inc()
		return nil, err
	}

	s.record(ctx, appID, types.UploadKindDictionary, fileName, types.UploadStatusOK, len(entries), skipped, nil)
	metrics.UploadCnt.WithLabelValues(string(types.UploadKindDictionary), string(types.UploadStatusOK)).Inc()
	metrics.UploadRowCnt.WithLabelValues(string(types.UploadKindDictionary), "committed").Add(float64(len(entries)))
	metrics.UploadRowCnt.WithLabelValues(string(types.UploadKindDictionary), "skipped").Add(float64(skipped))
	logctx.FromCtx(ctx, s.log).Infow("dictionary upload committed",
		"application_id", appID, "file", fileName,
		"entries", len(entries), "skipped", skipped)

	return &DictionaryReport{TotalProcessed: len(entries), TotalSkipped: skipped}, nil
}

// UploadSuccessRate ingests a success-rate report. Phase 1 normalizes and
// validates every row before any database write; one hard row error rejects
// the whole file with a per-row report. Phase 2 classifies and inserts all
// rows inside a single transaction, in source order.
func (s *Service) UploadSuccessRate(ctx context.Context, appID int64, fileName string, data []byte) (*SuccessRateReport, error) {
	if err := s.requireApplication(ctx, appID); err != nil {
		return nil, err
	}

	table, err := Parse(fileName, data)
	if err != nil {
		return nil, err
	}
	cols, err := SuccessRateColumns.Bind(table.Headers)
	if err != nil {
		return nil, err
	}

	norm := &successRateNormalizer{appID: appID, cols: cols, spreadsheet: table.Spreadsheet}
	var facts []*models.SuccessRateFact
	var rowErrors []RowError
	consecutiveEmpty := 0
	for i, row := range table.Rows {
		fact, err := norm.normalize(row)
		blank := fact == nil && err == nil
		if s.stopScanning(table, &consecutiveEmpty, blank) {
			break
		}
		if blank {
			continue
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{RowNumber: table.RowLine(i), Reason: err.Error()})
			continue
		}
		facts = append(facts, fact)
	}
	processed := len(facts) + len(rowErrors)

	if len(rowErrors) > 0 {
		detail := &models.UploadLogDetail{
			SkippedRows: lo.Map(rowErrors, func(re RowError, _ int) models.UploadLogSkippedRow {
				return models.UploadLogSkippedRow{RowNumber: re.RowNumber, Reason: re.Reason}
			}),
		}
		s.record(ctx, appID, types.UploadKindSuccessRate, fileName, types.UploadStatusRejected, processed, len(rowErrors), detail)
		metrics.UploadCnt.WithLabelValues(string(types.UploadKindSuccessRate), string(types.UploadStatusRejected)).Inc()
		metrics.UploadRowCnt.WithLabelValues(string(types.UploadKindSuccessRate), "rejected").Add(float64(len(rowErrors)))
		return nil, &ValidationError{SkippedRows: rowErrors, TotalProcessed: processed}
	}

	err = s.db.InTx(ctx, func(stores storage.Stores) error {
		ok, err := stores.Applications().Exists(ctx, appID)
		if err != nil {
			return fmt.Errorf("failed to verify application: %w", err)
		}
		if !ok {
			return ErrApplicationNotFound
		}
		for _, fact := range facts {
			class, err := s.resolver.Resolve(ctx, stores, classify.Row{
				ApplicationID:   fact.ApplicationID,
				TransactionType: fact.TransactionType,
				RC:              fact.RC,
				Description:     fact.Description,
				Status:          fact.Status,
			})
			if err != nil {
				return err
			}
			fact.ErrorClass = class
			if fact.RC == nil && class != nil && *class == types.ErrorClassSuccess {
				rc := defaultSuccessRC
				fact.RC = &rc
			}
		}
		if err := stores.Facts().InsertBatch(ctx, facts); err != nil {
			return fmt.Errorf("failed to insert success-rate rows: %w", err)
		}
		return nil
	})
	if err != nil {
		s.record(ctx, appID, types.UploadKindSuccessRate, fileName, types.UploadStatusFailed, processed, 0, &models.UploadLogDetail{Error: err.Error()})
		metrics.UploadCnt.WithLabelValues(string(types.UploadKindSuccessRate), string(types.UploadStatusFailed)).Inc()
		return nil, err
	}

	s.record(ctx, appID, types.UploadKindSuccessRate, fileName, types.UploadStatusOK, len(facts), 0, nil)
	metrics.UploadCnt.WithLabelValues(string(types.UploadKindSuccessRate), string(types.UploadStatusOK)).Inc()
	metrics.UploadRowCnt.WithLabelValues(string(types.UploadKindSuccessRate), "committed").Add(float64(len(facts)))
	logctx.FromCtx(ctx, s.log).Infow("success-rate upload committed",
		"application_id", appID, "file", fileName, "rows", len(facts))

	return &SuccessRateReport{TotalProcessed: len(facts)}, nil
}

func (s *Service) requireApplication(ctx context.Context, appID int64) error {
	ok, err := s.db.Applications().Exists(ctx, appID)
	if err != nil {
		return fmt.Errorf("failed to verify application: %w", err)
	}
	if !ok {
		return ErrApplicationNotFound
	}
	return nil
}

// stopScanning implements the trailing-empty-region cutoff for spreadsheet
// sources, which declare bounds far past their last populated row.
func (s *Service) stopScanning(table *Table, consecutiveEmpty *int, blank bool) bool {
	if !blank {
		*consecutiveEmpty = 0
		return false
	}
	*consecutiveEmpty++
	return table.Spreadsheet && s.cfg.MaxEmptyRows > 0 && *consecutiveEmpty >= s.cfg.MaxEmptyRows
}

func dictionaryRowBlank(row []Cell, cols map[string]int) bool {
	return isBlankCell(cellAt(row, cols[ColTransactionType])) &&
		isBlankCell(cellAt(row, cols[ColRC])) &&
		isBlankCell(cellAt(row, cols[ColErrorClass]))
}

func (s *Service) record(ctx context.Context, appID int64, kind types.UploadKind, fileName string, status types.UploadStatus, processed, skipped int, detail *models.UploadLogDetail) {
	s.logs.Record(ctx, &models.UploadLog{
		ApplicationID: appID,
		Kind:          kind,
		FileName:      fileName,
		Status:        status,
		Processed:     processed,
		Skipped:       skipped,
		Detail:        datatypes.NewJSONType(detail),
	})
}
