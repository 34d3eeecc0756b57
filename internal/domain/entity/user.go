// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a person that can authenticate against the system: an admin, an
// operator at a counter, a driver on the street, or a customer tracking their
// own shipments. The password hash never leaves the persistence boundary in
// serialized form.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"rol"`
	Active       bool      `json:"activo"`
	Phone        string    `json:"telefono,omitempty"`
	Address      string    `json:"direccion,omitempty"`
	City         string    `json:"ciudad,omitempty"`
	CreatedAt    time.Time `json:"fecha_registro"`
	UpdatedAt    time.Time `json:"-"`
}

// NormalizeEmail lowers and trims an email address. Email uniqueness is
// case-insensitive, so every lookup and write goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsDriver reports whether the user can be assigned shipments.
func (u *User) IsDriver() bool {
	return u.Role == RoleDriver
}
