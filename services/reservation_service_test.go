package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"indigo-hotel/models"
)

func newMockService(t *testing.T) (*ReservationService, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewReservationService(db), mock
}

func roomRows(capacity int, price float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "room_number", "price_base", "capacity"}).
		AddRow(3, "101", price, capacity)
}

func reservationRows(userID uint, status, otpCode string, otpExpires time.Time, verified bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "room_id", "confirmation_code", "status",
		"otp_code", "otp_expires", "otp_verified", "total",
	}).AddRow(42, userID, 3, "3F2A9B1C", status, otpCode, otpExpires, verified, 360.0)
}

func createInput() CreateRoomReservationInput {
	return CreateRoomReservationInput{
		UserID:   7,
		RoomID:   3,
		CheckIn:  time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Guests:   2,
	}
}

// ---------------------------
// CreateRoomReservation
// ---------------------------

func TestCreateRoomReservationRoomNotFound(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `rooms`").WillReturnError(gorm.ErrRecordNotFound)

	_, err := svc.CreateRoomReservation(createInput())
	require.EqualError(t, err, "room_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomReservationCapacityExceeded(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `rooms`").WillReturnRows(roomRows(2, 120))

	in := createInput()
	in.Guests = 5
	_, err := svc.CreateRoomReservation(in)
	require.EqualError(t, err, "guests_exceed_capacity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomReservationInvalidDates(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `rooms`").WillReturnRows(roomRows(2, 120))

	in := createInput()
	in.CheckOut = in.CheckIn
	_, err := svc.CreateRoomReservation(in)
	require.EqualError(t, err, "invalid_dates")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomReservationDatesUnavailable(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `rooms`").WillReturnRows(roomRows(2, 120))
	mock.ExpectQuery("SELECT count.* FROM `room_reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.CreateRoomReservation(createInput())
	require.EqualError(t, err, "dates_unavailable")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomReservationSuccess(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `rooms`").WillReturnRows(roomRows(2, 120))
	mock.ExpectQuery("SELECT count.* FROM `room_reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `room_reservations`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()
	// owner lookup for the OTP email; SMTP is unset so the send is a mock log
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email"}).
			AddRow(7, "Maria", "maria@example.com"))

	reservation, err := svc.CreateRoomReservation(createInput())
	require.NoError(t, err)

	assert.Equal(t, uint(42), reservation.ID)
	assert.Equal(t, models.StatusPending, reservation.Status)
	assert.Equal(t, 360.0, reservation.Total, "3 nights at 120")
	assert.Len(t, reservation.OTPCode, 6)
	assert.NotEmpty(t, reservation.ConfirmationCode)
	require.NotNil(t, reservation.OTPExpires)
	assert.True(t, reservation.OTPExpires.After(time.Now().UTC()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomReservationPartialDayBillsFullNight(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `rooms`").WillReturnRows(roomRows(2, 120))
	mock.ExpectQuery("SELECT count.* FROM `room_reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `room_reservations`").
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email"}).
			AddRow(7, "Maria", "maria@example.com"))

	// 3.5 days rounds up to 4 nights, same rounding the price projection uses.
	in := createInput()
	in.CheckOut = in.CheckIn.Add(84 * time.Hour)
	reservation, err := svc.CreateRoomReservation(in)
	require.NoError(t, err)
	assert.Equal(t, 480.0, reservation.Total)
}

// ---------------------------
// VerifyOTP
// ---------------------------

func TestVerifyOTPSuccess(t *testing.T) {
	svc, mock := newMockService(t)
	future := time.Now().UTC().Add(5 * time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusPending, "482913", future, false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `room_reservations`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reservation, err := svc.VerifyOTP(42, 7, "482913")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, reservation.Status)
	assert.True(t, reservation.OTPVerified)
	assert.Empty(t, reservation.OTPCode)
	assert.Nil(t, reservation.OTPExpires)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPNotOwner(t *testing.T) {
	svc, mock := newMockService(t)
	future := time.Now().UTC().Add(5 * time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(9, models.StatusPending, "482913", future, false))

	_, err := svc.VerifyOTP(42, 7, "482913")
	require.EqualError(t, err, "not_owner")
}

func TestVerifyOTPAlreadyVerified(t *testing.T) {
	svc, mock := newMockService(t)
	future := time.Now().UTC().Add(5 * time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusConfirmed, "", future, true))

	_, err := svc.VerifyOTP(42, 7, "482913")
	require.EqualError(t, err, "already_verified")
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, mock := newMockService(t)
	past := time.Now().UTC().Add(-time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusPending, "482913", past, false))

	_, err := svc.VerifyOTP(42, 7, "482913")
	require.EqualError(t, err, "otp_expired")
}

func TestVerifyOTPIncorrectCode(t *testing.T) {
	svc, mock := newMockService(t)
	future := time.Now().UTC().Add(5 * time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusPending, "482913", future, false))

	_, err := svc.VerifyOTP(42, 7, "111111")
	require.EqualError(t, err, "otp_incorrect")
}

// ---------------------------
// ResendOTP
// ---------------------------

func TestResendOTPRefreshesChallenge(t *testing.T) {
	svc, mock := newMockService(t)
	future := time.Now().UTC().Add(time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusPending, "482913", future, false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `room_reservations`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email"}).
			AddRow(7, "Maria", "maria@example.com"))

	require.NoError(t, svc.ResendOTP(42, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResendOTPAfterVerificationRejected(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusConfirmed, "", time.Now().UTC(), true))

	require.EqualError(t, svc.ResendOTP(42, 7), "already_verified")
}

// ---------------------------
// Admin edits
// ---------------------------

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newMockService(t)
	_, err := svc.UpdateStatus(42, "bogus")
	require.EqualError(t, err, "invalid_status")
}

func TestDeleteProtectsActiveReservations(t *testing.T) {
	svc, mock := newMockService(t)
	future := time.Now().UTC().Add(time.Minute)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusPending, "482913", future, false))

	require.EqualError(t, svc.Delete(42), "reservation_active")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesTerminalReservation(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery("SELECT .* FROM `room_reservations`").
		WillReturnRows(reservationRows(7, models.StatusCancelled, "", time.Now().UTC(), false))
	mock.ExpectBegin()
	// soft delete: sets deleted_at instead of removing the row
	mock.ExpectExec("UPDATE `room_reservations` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
