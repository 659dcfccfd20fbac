package models

import "time"

// Application is one of the monitored applications. Every other table hangs
// off it via id_app_identifier with cascade delete.
type Application struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:app_name;type:varchar(255);not null;uniqueIndex" json:"app_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "app_identifier"
}
