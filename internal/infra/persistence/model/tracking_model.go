package model

import "time"

// TrackingEntryModel mirrors the 'historial_tracking' table: the public
// tracking trail shared by shipments and freight orders, keyed by the
// external code. Append-only.
type TrackingEntryModel struct {
	ID           uint64    `gorm:"primary_key;auto_increment"`
	TrackingCode string    `gorm:"type:varchar(30);not null;index"`
	Status       string    `gorm:"type:varchar(20);not null"`
	Note         string    `gorm:"type:text"`
	ChangedAt    time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (TrackingEntryModel) TableName() string {
	return "historial_tracking"
}
