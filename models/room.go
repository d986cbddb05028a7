package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Category    string  `json:"category" gorm:"type:varchar(50)"`
	BedSize     string  `json:"bedSize" gorm:"column:bed_size;type:varchar(20)"`
	Floor       string  `json:"floor" gorm:"type:varchar(10)"`
	Status      string  `json:"status" gorm:"type:varchar(30);default:available"`
	PriceBase   float64 `json:"priceBase" gorm:"column:price_base"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description" gorm:"type:text"`
}
