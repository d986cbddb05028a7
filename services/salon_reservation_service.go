// services/salon_reservation_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"indigo-hotel/models"
	"indigo-hotel/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SalonReservationService handles event salon bookings. Salons start pending
// and are confirmed by staff; their price can be renegotiated afterwards,
// which is why PATCH accepts a total for this kind only.
type SalonReservationService struct {
	DB *gorm.DB
}

func NewSalonReservationService(db *gorm.DB) *SalonReservationService {
	return &SalonReservationService{DB: db}
}

type CreateSalonReservationInput struct {
	UserID       uint
	SalonID      uint
	EventDate    time.Time
	GuestCount   int
	EventDetails datatypes.JSON
}

func (s *SalonReservationService) Create(in CreateSalonReservationInput) (models.SalonReservation, error) {
	var salon models.EventSalon
	if err := s.DB.First(&salon, in.SalonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SalonReservation{}, errors.New("salon_not_found")
		}
		return models.SalonReservation{}, fmt.Errorf("failed to find salon: %w", err)
	}
	if in.GuestCount < 1 {
		return models.SalonReservation{}, errors.New("invalid_guest_count")
	}
	if salon.Capacity > 0 && in.GuestCount > salon.Capacity {
		return models.SalonReservation{}, errors.New("guests_exceed_capacity")
	}

	reservation := models.SalonReservation{
		UserID:       in.UserID,
		SalonID:      in.SalonID,
		EventCode:    utils.GenerateEventCode(),
		Status:       models.StatusPending,
		EventDate:    in.EventDate,
		GuestCount:   in.GuestCount,
		EventDetails: in.EventDetails,
		Total:        salon.PriceBase,
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return models.SalonReservation{}, fmt.Errorf("failed to create salon reservation: %w", err)
	}
	return reservation, nil
}

func (s *SalonReservationService) List(userID uint, staff bool) ([]models.SalonReservation, error) {
	q := s.DB.Preload("User").Preload("Salon").Order("created_at DESC")
	if !staff {
		q = q.Where("user_id = ?", userID)
	}
	var reservations []models.SalonReservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list salon reservations: %w", err)
	}
	return reservations, nil
}

// Update applies an admin status edit and, optionally, a price override.
func (s *SalonReservationService) Update(reservationID uint, status string, total *float64) (models.SalonReservation, error) {
	if !models.ValidStatus(status) {
		return models.SalonReservation{}, errors.New("invalid_status")
	}
	if total != nil && *total < 0 {
		return models.SalonReservation{}, errors.New("invalid_total")
	}
	var reservation models.SalonReservation
	if err := s.DB.Preload("User").Preload("Salon").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation, errors.New("reservation_not_found")
		}
		return reservation, fmt.Errorf("failed to find salon reservation: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if total != nil {
		updates["total"] = *total
	}
	if err := s.DB.Model(&reservation).Updates(updates).Error; err != nil {
		return reservation, fmt.Errorf("failed to update salon reservation: %w", err)
	}
	reservation.Status = status
	if total != nil {
		reservation.Total = *total
	}
	return reservation, nil
}

func (s *SalonReservationService) Delete(reservationID uint) error {
	var reservation models.SalonReservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation_not_found")
		}
		return fmt.Errorf("failed to find salon reservation: %w", err)
	}
	if reservation.Status == models.StatusPending || reservation.Status == models.StatusConfirmed {
		return errors.New("reservation_active")
	}
	return s.DB.Delete(&reservation).Error
}
