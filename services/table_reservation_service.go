// services/table_reservation_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"indigo-hotel/models"
	"indigo-hotel/utils"

	"gorm.io/gorm"
)

// TableReservationService handles restaurant table bookings. Tables are
// confirmed immediately, there is no verification step.
type TableReservationService struct {
	DB *gorm.DB
}

func NewTableReservationService(db *gorm.DB) *TableReservationService {
	return &TableReservationService{DB: db}
}

type CreateTableReservationInput struct {
	UserID      uint
	TableID     uint
	ReservedFor time.Time
	PartySize   int
	Notes       string
}

func (s *TableReservationService) Create(in CreateTableReservationInput) (models.TableReservation, error) {
	var table models.RestaurantTable
	if err := s.DB.First(&table, in.TableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TableReservation{}, errors.New("table_not_found")
		}
		return models.TableReservation{}, fmt.Errorf("failed to find table: %w", err)
	}
	if in.PartySize < 1 {
		in.PartySize = 1
	}
	if table.Capacity > 0 && in.PartySize > table.Capacity {
		return models.TableReservation{}, errors.New("party_exceeds_capacity")
	}

	reservation := models.TableReservation{
		UserID:          in.UserID,
		TableID:         in.TableID,
		ReservationCode: utils.GenerateTableCode(),
		Status:          models.StatusConfirmed,
		ReservedFor:     in.ReservedFor,
		PartySize:       in.PartySize,
		Notes:           in.Notes,
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return models.TableReservation{}, fmt.Errorf("failed to create table reservation: %w", err)
	}
	return reservation, nil
}

func (s *TableReservationService) List(userID uint, staff bool) ([]models.TableReservation, error) {
	q := s.DB.Preload("User").Preload("Table").Order("created_at DESC")
	if !staff {
		q = q.Where("user_id = ?", userID)
	}
	var reservations []models.TableReservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list table reservations: %w", err)
	}
	return reservations, nil
}

func (s *TableReservationService) UpdateStatus(reservationID uint, status string) (models.TableReservation, error) {
	if !models.ValidStatus(status) {
		return models.TableReservation{}, errors.New("invalid_status")
	}
	var reservation models.TableReservation
	if err := s.DB.Preload("User").Preload("Table").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation, errors.New("reservation_not_found")
		}
		return reservation, fmt.Errorf("failed to find table reservation: %w", err)
	}
	if err := s.DB.Model(&reservation).Update("status", status).Error; err != nil {
		return reservation, fmt.Errorf("failed to update status: %w", err)
	}
	reservation.Status = status
	return reservation, nil
}

func (s *TableReservationService) Delete(reservationID uint) error {
	var reservation models.TableReservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation_not_found")
		}
		return fmt.Errorf("failed to find table reservation: %w", err)
	}
	if reservation.Status == models.StatusPending || reservation.Status == models.StatusConfirmed {
		return errors.New("reservation_active")
	}
	return s.DB.Delete(&reservation).Error
}
