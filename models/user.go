package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values used across middleware and controllers.
const (
	RoleClient       = "client"
	RoleReceptionist = "receptionist"
	RoleAdmin        = "admin"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:150" json:"first_name"`
	Username  string `gorm:"uniqueIndex;size:150" json:"username"`
	Email     string `gorm:"size:254;index" json:"email"`
	Password  string `gorm:"size:255" json:"-"` // store hashed password, never return in JSON
	Role      string `gorm:"size:32;default:client" json:"role"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsStaff reports whether the user may access the admin reservation endpoints.
func (u User) IsStaff() bool {
	return u.Role == RoleReceptionist || u.Role == RoleAdmin
}
