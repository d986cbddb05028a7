package services

import (
	"indigo-hotel/config"
	"indigo-hotel/models"
)

// Plain read services for the bookable inventory. These back the public
// catalog pages and the resource snapshot the booking form renders.

type RoomService struct{}

func (s RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := config.DB.Find(&rooms).Error
	return rooms, err
}

func (s RoomService) GetByID(id int) (models.Room, error) {
	var room models.Room
	err := config.DB.First(&room, id).Error
	return room, err
}

type TableService struct{}

func (s TableService) GetAll() ([]models.RestaurantTable, error) {
	var tables []models.RestaurantTable
	err := config.DB.Find(&tables).Error
	return tables, err
}

func (s TableService) GetByID(id int) (models.RestaurantTable, error) {
	var table models.RestaurantTable
	err := config.DB.First(&table, id).Error
	return table, err
}

type SalonService struct{}

func (s SalonService) GetAll() ([]models.EventSalon, error) {
	var salons []models.EventSalon
	err := config.DB.Find(&salons).Error
	return salons, err
}

func (s SalonService) GetByID(id int) (models.EventSalon, error) {
	var salon models.EventSalon
	err := config.DB.First(&salon, id).Error
	return salon, err
}
