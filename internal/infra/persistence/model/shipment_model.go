package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel mirrors the 'encomiendas' table. The delivery record is
// flattened into nullable columns; it only exists once the shipment reaches
// the delivered state.
type ShipmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Code          string    `gorm:"type:varchar(20);unique;not null"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	DeclaredValue float64   `gorm:"type:numeric(12,2);not null;default:0"`

	SenderName    string `gorm:"type:varchar(100);not null"`
	SenderEmail   string `gorm:"type:varchar(255)"`
	SenderPhone   string `gorm:"type:varchar(30)"`
	SenderAddress string `gorm:"type:varchar(255)"`
	SenderRUT     string `gorm:"type:varchar(20)"`

	RecipientName    string `gorm:"type:varchar(100);not null"`
	RecipientEmail   string `gorm:"type:varchar(255)"`
	RecipientPhone   string `gorm:"type:varchar(30)"`
	RecipientAddress string `gorm:"type:varchar(255);not null"`
	RecipientCity    string `gorm:"type:varchar(100)"`
	RecipientRUT     string `gorm:"type:varchar(20)"`

	DriverID   *uuid.UUID `gorm:"type:uuid;index"`
	DriverName string     `gorm:"type:varchar(100)"`

	DeliveredAt        *time.Time
	DeliveryReceivedBy string `gorm:"type:varchar(100)"`
	DeliveryRUT        string `gorm:"type:varchar(20)"`
	DeliveryNotes      string `gorm:"type:text"`

	RegisteredBy uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	History []ShipmentHistoryModel `gorm:"foreignKey:ShipmentID"`
}

// TableName explicitly sets the table name for GORM.
func (ShipmentModel) TableName() string {
	return "encomiendas"
}

// ShipmentHistoryModel mirrors the 'encomienda_historial' table: the
// append-only audit trail owned by a shipment. Rows are never updated.
type ShipmentHistoryModel struct {
	ID         uint64    `gorm:"primary_key;auto_increment"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Note       string    `gorm:"type:text"`
	Actor      string    `gorm:"type:varchar(255)"`
	ChangedAt  time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ShipmentHistoryModel) TableName() string {
	return "encomienda_historial"
}
