package models

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which views and actions a user is authorized for.
type Role string

const (
	RoleStudent     Role = "estudiante"
	RoleTeacher     Role = "docente"
	RoleCoordinator Role = "coordinador"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleCoordinator:
		return true
	}
	return false
}

// AuthProvider is how the account was created.
type AuthProvider string

const (
	ProviderPassword AuthProvider = "password"
	ProviderGoogle   AuthProvider = "google"
)

// User represents an authenticated identity. Federated accounts are created
// with an empty role and must complete registration before they can act.
type User struct {
	ID           uuid.UUID    `json:"uid" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email        string       `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Name         string       `json:"nombre" db:"name" gorm:"type:text;not null"`
	Role         Role         `json:"rol" db:"role" gorm:"type:text;not null"`
	PasswordHash string       `json:"-" db:"password_hash" gorm:"type:text"`
	Provider     AuthProvider `json:"-" db:"provider" gorm:"type:text;not null;default:'password'"`
	CreatedAt    time.Time    `json:"-" db:"created_at" gorm:"not null;autoCreateTime"`
}
