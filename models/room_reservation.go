package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses shared by the three reservation kinds.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the four reservation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type RoomReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"index;column:user_id" json:"user_id"`
	RoomID uint `gorm:"index;column:room_id" json:"room_id"`

	ConfirmationCode string `gorm:"column:confirmation_code;uniqueIndex;size:50" json:"confirmation_code"`
	Status           string `gorm:"column:status;size:20;default:pending" json:"status"`

	CheckIn  time.Time `gorm:"column:check_in;type:date" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;type:date" json:"check_out"`
	Guests   int       `gorm:"column:guests;default:1" json:"guests"`

	// OTP challenge bound to the pending reservation. A resend supersedes the
	// previous code; verification consumes it.
	OTPCode     string     `gorm:"column:otp_code;size:6" json:"-"`
	OTPExpires  *time.Time `gorm:"column:otp_expires" json:"-"`
	OTPVerified bool       `gorm:"column:otp_verified;default:false" json:"otp_verified"`

	Total float64 `gorm:"column:total" json:"total"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
