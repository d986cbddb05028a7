// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"indigo-hotel/models"
	"indigo-hotel/utils"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// OTPWindowMinutes is the server-side validity window of a verification code.
// The booking UI shows its own 90s resend countdown; expiry itself is enforced
// here only.
const OTPWindowMinutes = 10

// statuses that keep a room occupied for the overlap check
var activeStatuses = []string{models.StatusPending, models.StatusConfirmed}

// ReservationService wraps *gorm.DB with the room reservation lifecycle:
// create (pending + OTP challenge), verify, resend, admin listing and edits.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateRoomReservationInput struct {
	UserID   uint
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// CreateRoomReservation validates availability, creates a pending reservation
// with a fresh OTP challenge and emails the code to the owner.
func (s *ReservationService) CreateRoomReservation(in CreateRoomReservationInput) (models.RoomReservation, error) {
	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoomReservation{}, errors.New("room_not_found")
		}
		return models.RoomReservation{}, fmt.Errorf("failed to find room: %w", err)
	}

	if in.Guests < 1 {
		in.Guests = 1
	}
	if room.Capacity > 0 && in.Guests > room.Capacity {
		return models.RoomReservation{}, errors.New("guests_exceed_capacity")
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return models.RoomReservation{}, errors.New("invalid_dates")
	}

	// Overlap: (StartA < EndB) and (EndA > StartB) against active reservations.
	var conflicts int64
	if err := s.DB.Model(&models.RoomReservation{}).
		Where("room_id = ? AND status IN ?", in.RoomID, activeStatuses).
		Where("check_in < ? AND check_out > ?", in.CheckOut, in.CheckIn).
		Count(&conflicts).Error; err != nil {
		return models.RoomReservation{}, fmt.Errorf("failed to check availability: %w", err)
	}
	if conflicts > 0 {
		return models.RoomReservation{}, errors.New("dates_unavailable")
	}

	nights := int(math.Ceil(in.CheckOut.Sub(in.CheckIn).Hours() / 24))
	total := 0.0
	if nights > 0 {
		total = float64(nights) * room.PriceBase
	}

	otp, err := utils.GenerateOTP(6)
	if err != nil {
		return models.RoomReservation{}, fmt.Errorf("failed to generate otp: %w", err)
	}
	expires := time.Now().UTC().Add(OTPWindowMinutes * time.Minute)

	// create with retries on confirmation code collision
	var reservation models.RoomReservation
	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		reservation = models.RoomReservation{
			UserID:           in.UserID,
			RoomID:           in.RoomID,
			ConfirmationCode: utils.GenerateConfirmationCode(),
			Status:           models.StatusPending,
			CheckIn:          in.CheckIn,
			CheckOut:         in.CheckOut,
			Guests:           in.Guests,
			OTPCode:          otp,
			OTPExpires:       &expires,
			Total:            total,
		}
		createErr = s.DB.Create(&reservation).Error
		if createErr == nil {
			break
		}
		// 1062 = duplicate entry, the generated code collided
		var mysqlErr *mysqldrv.MySQLError
		if errors.As(createErr, &mysqlErr) && mysqlErr.Number == 1062 {
			log.Printf("confirmation code collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return models.RoomReservation{}, fmt.Errorf("failed to create reservation: %w", createErr)
	}
	if createErr != nil {
		return models.RoomReservation{}, fmt.Errorf("failed to create reservation after retries: %w", createErr)
	}

	// send OTP email (best-effort, never blocks the reservation)
	var owner models.User
	if err := s.DB.First(&owner, in.UserID).Error; err == nil {
		if mailErr := utils.SendReservationOTPEmail(owner.Email, owner.FirstName, otp, reservation.ConfirmationCode, OTPWindowMinutes); mailErr != nil {
			log.Printf("warning: otp email failed for reservation %d: %v", reservation.ID, mailErr)
		}
	}

	return reservation, nil
}

// VerifyOTP consumes the pending challenge and confirms the reservation.
func (s *ReservationService) VerifyOTP(reservationID, userID uint, code string) (models.RoomReservation, error) {
	var reservation models.RoomReservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation, errors.New("reservation_not_found")
		}
		return reservation, fmt.Errorf("failed to find reservation: %w", err)
	}
	if reservation.UserID != userID {
		return reservation, errors.New("not_owner")
	}
	if reservation.OTPVerified || reservation.Status != models.StatusPending {
		return reservation, errors.New("already_verified")
	}
	if reservation.OTPCode == "" || reservation.OTPExpires == nil || time.Now().UTC().After(*reservation.OTPExpires) {
		return reservation, errors.New("otp_expired")
	}
	if reservation.OTPCode != code {
		return reservation, errors.New("otp_incorrect")
	}

	updates := map[string]interface{}{
		"otp_verified": true,
		"otp_code":     "",
		"otp_expires":  nil,
		"status":       models.StatusConfirmed,
	}
	if err := s.DB.Model(&reservation).Updates(updates).Error; err != nil {
		return reservation, fmt.Errorf("failed to confirm reservation: %w", err)
	}
	reservation.OTPVerified = true
	reservation.OTPCode = ""
	reservation.OTPExpires = nil
	reservation.Status = models.StatusConfirmed
	return reservation, nil
}

// ResendOTP supersedes the previous challenge with a fresh code and window.
func (s *ReservationService) ResendOTP(reservationID, userID uint) error {
	var reservation models.RoomReservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation_not_found")
		}
		return fmt.Errorf("failed to find reservation: %w", err)
	}
	if reservation.UserID != userID {
		return errors.New("not_owner")
	}
	if reservation.OTPVerified || reservation.Status != models.StatusPending {
		return errors.New("already_verified")
	}

	otp, err := utils.GenerateOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	expires := time.Now().UTC().Add(OTPWindowMinutes * time.Minute)

	if err := s.DB.Model(&reservation).Updates(map[string]interface{}{
		"otp_code":    otp,
		"otp_expires": expires,
	}).Error; err != nil {
		return fmt.Errorf("failed to refresh otp: %w", err)
	}

	var owner models.User
	if err := s.DB.First(&owner, userID).Error; err == nil {
		if mailErr := utils.SendReservationOTPEmail(owner.Email, owner.FirstName, otp, reservation.ConfirmationCode, OTPWindowMinutes); mailErr != nil {
			log.Printf("warning: otp email failed for reservation %d: %v", reservation.ID, mailErr)
			return errors.New("email_send_failed")
		}
	}
	return nil
}

// ListRoomReservations returns all reservations for staff, own ones otherwise,
// newest first.
func (s *ReservationService) ListRoomReservations(userID uint, staff bool) ([]models.RoomReservation, error) {
	q := s.DB.Preload("User").Preload("Room").Order("created_at DESC")
	if !staff {
		q = q.Where("user_id = ?", userID)
	}
	var reservations []models.RoomReservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// UpdateStatus applies an admin status edit.
func (s *ReservationService) UpdateStatus(reservationID uint, status string) (models.RoomReservation, error) {
	if !models.ValidStatus(status) {
		return models.RoomReservation{}, errors.New("invalid_status")
	}
	var reservation models.RoomReservation
	if err := s.DB.Preload("User").Preload("Room").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation, errors.New("reservation_not_found")
		}
		return reservation, fmt.Errorf("failed to find reservation: %w", err)
	}
	if err := s.DB.Model(&reservation).Update("status", status).Error; err != nil {
		return reservation, fmt.Errorf("failed to update status: %w", err)
	}
	reservation.Status = status
	return reservation, nil
}

// Delete removes a terminal reservation. Active ones are protected here as
// well, not only in the admin UI.
func (s *ReservationService) Delete(reservationID uint) error {
	var reservation models.RoomReservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation_not_found")
		}
		return fmt.Errorf("failed to find reservation: %w", err)
	}
	if reservation.Status == models.StatusPending || reservation.Status == models.StatusConfirmed {
		return errors.New("reservation_active")
	}
	return s.DB.Delete(&reservation).Error
}
