// Package classify resolves the error class of a success-rate row against
// the response-code dictionary, parking codes it cannot resolve for later
// operator mapping.
package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/metrics"
	"github.com/kurniadi/rcdash/pkg/types"
)

// Row is the slice of a fact row the resolver needs.
type Row struct {
	ApplicationID   int64
	TransactionType string
	RC              *string
	Description     *string
	Status          *string
}

type Resolver struct {
	log *zap.SugaredLogger
}

func NewResolver(log *zap.SugaredLogger) *Resolver {
	return &Resolver{log: log}
}

// Resolve classifies one row, short-circuiting on the first matching tier:
// exact (app, type, rc) lookup, then (app, rc) ignoring type, then an
// UnmappedCode upsert with a nil class. Rows without a response code are
// classified from their status alone and never touch the dictionary.
func (r *Resolver) Resolve(ctx context.Context, stores storage.Stores, row Row) (*types.ErrorClass, error) {
	rc := ""
	if row.RC != nil {
		rc = strings.TrimSpace(*row.RC)
	}

	if rc == "" {
		if row.Status != nil && types.IsSuccessStatus(*row.Status) {
			class := types.ErrorClassSuccess
			return &class, nil
		}
		return nil, nil
	}

	entry, err := stores.Dictionary().FindByAppTypeCode(ctx, row.ApplicationID, row.TransactionType, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to look up dictionary entry: %w", err)
	}
	if entry == nil {
		entry, err = stores.Dictionary().FindByAppCode(ctx, row.ApplicationID, rc)
		if err != nil {
			return nil, fmt.Errorf("failed to look up dictionary entry by code: %w", err)
		}
	}
	if entry != nil {
		class := entry.ErrorClass
		return &class, nil
	}

	unmapped := &models.UnmappedCode{
		ApplicationID:   row.ApplicationID,
		TransactionType: row.TransactionType,
		RC:              rc,
		Description:     row.Description,
		Status:          row.Status,
	}
	if err := stores.Unmapped().Upsert(ctx, unmapped); err != nil {
		return nil, fmt.Errorf("failed to record unmapped code: %w", err)
	}
	metrics.UnmappedCnt.Inc()
	r.log.Infow("parked unmapped response code",
		"application_id", row.ApplicationID,
		"transaction_type", row.TransactionType,
		"rc", rc)
	return nil, nil
}
