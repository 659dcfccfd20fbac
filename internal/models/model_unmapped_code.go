package models

import "time"

// UnmappedCode is a response code seen in an uploaded report with no
// dictionary entry, queued for operator resolution. Reinsertion is
// idempotent on the unique key; description and status are last-write-wins.
type UnmappedCode struct {
	ID              int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID   int64        `gorm:"column:id_app_identifier;not null;uniqueIndex:unique_unmapped_rc,priority:1" json:"id_app_identifier"`
	Application     *Application `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`
	TransactionType string       `gorm:"column:jenis_transaksi;type:varchar(255);not null;default:'';uniqueIndex:unique_unmapped_rc,priority:2" json:"jenis_transaksi"`
	RC              string       `gorm:"column:rc;type:varchar(50);not null;uniqueIndex:unique_unmapped_rc,priority:3" json:"rc"`
	Description     *string      `gorm:"column:rc_description;type:varchar(500)" json:"rc_description"`
	Status          *string      `gorm:"column:status_transaksi;type:varchar(50)" json:"status_transaksi"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (UnmappedCode) TableName() string {
	return "unmapped_rc"
}
