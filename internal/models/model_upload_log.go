package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/kurniadi/rcdash/pkg/types"
)

// UploadLogDetail is the structured part of an upload audit record.
type UploadLogDetail struct {
	// SkippedRows lists the hard row errors of a rejected upload.
	SkippedRows []UploadLogSkippedRow `json:"skipped_rows,omitempty"`
	// Error carries the failure message of an aborted commit.
	Error string `json:"error,omitempty"`
}

type UploadLogSkippedRow struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

// UploadLog is a best-effort audit record written for every upload attempt.
type UploadLog struct {
	ID            int64                                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID int64                                  `gorm:"column:id_app_identifier;not null;index" json:"id_app_identifier"`
	Kind          types.UploadKind                       `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	FileName      string                                 `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	Status        types.UploadStatus                     `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Processed     int                                    `gorm:"column:processed;not null" json:"processed"`
	Skipped       int                                    `gorm:"column:skipped;not null" json:"skipped"`
	Detail        datatypes.JSONType[*UploadLogDetail]   `gorm:"column:detail;type:jsonb;default:'{}'" json:"detail"`
	CreatedAt     time.Time                              `json:"created_at"`
}

func (UploadLog) TableName() string {
	return "upload_log"
}
