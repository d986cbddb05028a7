package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SalonReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID  uint `gorm:"index;column:user_id" json:"user_id"`
	SalonID uint `gorm:"index;column:salon_id" json:"salon_id"`

	EventCode  string    `gorm:"column:event_code;uniqueIndex;size:20" json:"event_code"`
	Status     string    `gorm:"column:status;size:20;default:pending" json:"status"`
	EventDate  time.Time `gorm:"column:event_date" json:"event_date"`
	GuestCount int       `gorm:"column:guest_count" json:"guest_count"`

	// Free-form event setup sent by the frontend (catering, layout, schedule).
	EventDetails datatypes.JSON `gorm:"column:event_details" json:"event_details,omitempty"`

	Total float64 `gorm:"column:total" json:"total"`

	User  User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Salon EventSalon `gorm:"foreignKey:SalonID" json:"salon,omitempty"`
}
