package model

import (
	"time"
)

// Roles recognized by the portal. Role checks are flat string matches;
// there is no hierarchy beyond the gates declared per route.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
	RolePublic  = "public"
)

// User represents a registered user in the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string    `gorm:"type:varchar(20);default:'public'" json:"role"`
}

// IsValidRole reports whether s is one of the recognized role strings.
func IsValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleFaculty, RoleStudent, RolePublic:
		return true
	}
	return false
}
