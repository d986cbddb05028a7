package models

import (
	"time"

	"gorm.io/gorm"
)

type TableReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID  uint `gorm:"index;column:user_id" json:"user_id"`
	TableID uint `gorm:"index;column:table_id" json:"table_id"`

	ReservationCode string    `gorm:"column:reservation_code;uniqueIndex;size:50" json:"reservation_code"`
	Status          string    `gorm:"column:status;size:20;default:confirmed" json:"status"`
	ReservedFor     time.Time `gorm:"column:reserved_for" json:"reserved_for"`
	PartySize       int       `gorm:"column:party_size;default:1" json:"party_size"`
	Notes           string    `gorm:"column:notes;type:text" json:"notes"`

	User  User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Table RestaurantTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
}
