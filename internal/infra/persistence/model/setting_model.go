package model

import (
	"time"

	"github.com/google/uuid"
)

// SettingModel mirrors the 'configuracion' table: one runtime key/value pair.
type SettingModel struct {
	Key       string    `gorm:"type:varchar(100);primary_key"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SettingModel) TableName() string {
	return "configuracion"
}
