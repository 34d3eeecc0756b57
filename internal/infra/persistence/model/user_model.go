// Package model contains the GORM-specific structs mirroring the database
// tables. Mapping to and from domain entities lives next to each repository.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'usuarios' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'usuario';index"`
	Active       bool      `gorm:"not null;default:true"`
	Phone        string    `gorm:"type:varchar(30)"`
	Address      string    `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "usuarios"
}
