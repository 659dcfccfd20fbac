package models

import "github.com/kurniadi/rcdash/pkg/types"

// DictionaryEntry maps (application, transaction type, response code) to an
// error class. Transaction type and RC are stored as empty strings rather
// than NULLs so the composite unique index behaves under Postgres.
type DictionaryEntry struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID   int64            `gorm:"column:id_app_identifier;not null;uniqueIndex:unique_dictionary_entry,priority:1" json:"id_app_identifier"`
	Application     *Application     `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`
	TransactionType string           `gorm:"column:jenis_transaksi;type:varchar(255);not null;default:'';uniqueIndex:unique_dictionary_entry,priority:2" json:"jenis_transaksi"`
	RC              string           `gorm:"column:rc;type:varchar(50);not null;default:'';uniqueIndex:unique_dictionary_entry,priority:3" json:"rc"`
	Description     *string          `gorm:"column:rc_description;type:varchar(500)" json:"rc_description"`
	ErrorClass      types.ErrorClass `gorm:"column:error_type;type:varchar(10);not null" json:"error_type"`
}

func (DictionaryEntry) TableName() string {
	return "response_code_dictionary"
}
