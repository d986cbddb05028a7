package models

import (
	"gorm.io/gorm"
)

type EventSalon struct {
	gorm.Model

	Name        string  `json:"name" gorm:"uniqueIndex;type:varchar(100)"`
	Capacity    int     `json:"capacity"`
	PriceBase   float64 `json:"priceBase" gorm:"column:price_base"`
	Description string  `json:"description" gorm:"type:text"`
}
