package models

import (
	"gorm.io/gorm"
)

type RestaurantTable struct {
	gorm.Model

	TableNumber string `json:"tableNumber" gorm:"column:table_number;uniqueIndex;type:varchar(50)"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location" gorm:"type:varchar(50)"` // terrace, salon, bar
}
