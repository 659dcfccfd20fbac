package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kurniadi/rcdash/pkg/types"
)

// SuccessRateFact is one aggregate bucket from an uploaded success-rate
// report: (date, transaction type, response code). ErrorClass starts NULL
// and is filled at ingestion time or by a later reconciliation.
type SuccessRateFact struct {
	ID            int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID int64        `gorm:"column:id_app_identifier;not null;index" json:"id_app_identifier"`
	Application   *Application `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`

	Date time.Time `gorm:"column:tanggal_transaksi;type:date;not null" json:"tanggal_transaksi"`
	// Month is the numeric month rendered without a leading zero ("1".."12"),
	// kept as text to match the reporting layer.
	Month string `gorm:"column:bulan;type:varchar(20);not null" json:"bulan"`
	Year  int    `gorm:"column:tahun;not null" json:"tahun"`

	TransactionType string  `gorm:"column:jenis_transaksi;type:varchar(255);not null" json:"jenis_transaksi"`
	RC              *string `gorm:"column:rc;type:varchar(50)" json:"rc"`
	Description     *string `gorm:"column:rc_description;type:varchar(500)" json:"rc_description"`

	TotalCount  *int64           `gorm:"column:total_transaksi" json:"total_transaksi"`
	TotalAmount *decimal.Decimal `gorm:"column:total_nominal;type:decimal(20,2)" json:"total_nominal"`
	TotalFee    *decimal.Decimal `gorm:"column:total_biaya_admin;type:decimal(20,2)" json:"total_biaya_admin"`

	// Status is free text, persisted exactly as uploaded.
	Status     *string           `gorm:"column:status_transaksi;type:varchar(50)" json:"status_transaksi"`
	ErrorClass *types.ErrorClass `gorm:"column:error_type;type:varchar(10)" json:"error_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SuccessRateFact) TableName() string {
	return "app_success_rate"
}
