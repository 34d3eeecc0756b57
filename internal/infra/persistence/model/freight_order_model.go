package model

import (
	"time"

	"github.com/google/uuid"
)

// FreightOrderModel mirrors the 'ordenes_flete' table. Orders are soft
// deactivated through the Active flag, never deleted.
type FreightOrderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderNumber string    `gorm:"type:varchar(30);unique;not null"`
	IssuedAt    time.Time `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`

	SenderName    string `gorm:"type:varchar(100);not null"`
	SenderRUT     string `gorm:"type:varchar(20);not null"`
	SenderAddress string `gorm:"type:varchar(255)"`
	SenderPhone   string `gorm:"type:varchar(30)"`
	SenderEmail   string `gorm:"type:varchar(255)"`

	RecipientName    string `gorm:"type:varchar(100);not null"`
	RecipientRUT     string `gorm:"type:varchar(20);not null"`
	RecipientAddress string `gorm:"type:varchar(255)"`
	RecipientPhone   string `gorm:"type:varchar(30)"`
	RecipientEmail   string `gorm:"type:varchar(255)"`

	FreightValue     float64 `gorm:"type:numeric(12,2);not null;default:0"`
	InsuranceValue   float64 `gorm:"type:numeric(12,2);not null;default:0"`
	TotalValue       float64 `gorm:"type:numeric(12,2);not null;default:0"`
	GoodsDescription string  `gorm:"type:text"`
	Notes            string  `gorm:"type:text"`
	GenerationType   string  `gorm:"type:varchar(20);not null;default:'manual'"`

	Active       bool      `gorm:"not null;default:true;index"`
	RegisteredBy uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (FreightOrderModel) TableName() string {
	return "ordenes_flete"
}
