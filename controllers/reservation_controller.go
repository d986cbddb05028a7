// controllers/reservation_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"indigo-hotel/middleware"
	"indigo-hotel/models"
	"indigo-hotel/services"
	"indigo-hotel/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateRoomReservationPayload struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests"`
}

type VerifyOTPPayload struct {
	Code string `json:"code" binding:"required"`
}

type PatchReservationPayload struct {
	Status string   `json:"status" binding:"required"`
	Total  *float64 `json:"total,omitempty"`
}

// ---------------------------
// Helpers shared by the reservation controllers
// ---------------------------

func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func isStaff(c *gin.Context) bool {
	role := c.GetString(middleware.CtxRole)
	return role == models.RoleReceptionist || role == models.RoleAdmin
}

func reservationIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts the date-only wire format used by the booking form.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// statusForServiceError maps the service sentinel codes onto HTTP statuses.
func statusForServiceError(err error) int {
	switch err.Error() {
	case "reservation_not_found", "room_not_found", "table_not_found", "salon_not_found":
		return http.StatusNotFound
	case "not_owner":
		return http.StatusForbidden
	case "dates_unavailable", "reservation_active", "already_verified":
		return http.StatusConflict
	case "otp_incorrect", "otp_expired", "invalid_dates", "invalid_status",
		"invalid_total", "invalid_guest_count", "guests_exceed_capacity",
		"party_exceeds_capacity", "email_send_failed":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

// CreateRoomReservation handles POST /api/reservations/rooms. Validation
// failures come back as field_errors so the booking form can map them onto
// its inputs.
func (rc *ReservationController) CreateRoomReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload CreateRoomReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	fieldErrors := map[string]string{}
	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		fieldErrors["check_in"] = "invalid date, expected YYYY-MM-DD"
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		fieldErrors["check_out"] = "invalid date, expected YYYY-MM-DD"
	}
	if len(fieldErrors) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrors)
		return
	}

	reservation, err := rc.Svc.CreateRoomReservation(services.CreateRoomReservationInput{
		UserID:   userID,
		RoomID:   payload.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   payload.Guests,
	})
	if err != nil {
		switch err.Error() {
		case "dates_unavailable":
			utils.JSONFieldErrors(c, http.StatusConflict, map[string]string{
				"check_in": "the room is already reserved for the selected dates",
			})
		case "invalid_dates":
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
				"check_out": "check-out must be after check-in",
			})
		case "guests_exceed_capacity":
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
				"guests": "the room cannot host that many guests",
			})
		default:
			utils.JSONError(c, statusForServiceError(err), err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// VerifyOTP handles POST /api/reservations/rooms/:id/verify.
func (rc *ReservationController) VerifyOTP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}

	var payload VerifyOTPPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, err := rc.Svc.VerifyOTP(id, userID, payload.Code)
	if err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ResendOTP handles POST /api/reservations/rooms/:id/resend.
func (rc *ReservationController) ResendOTP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}

	if err := rc.Svc.ResendOTP(id, userID); err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"resent": true})
}

// ListRoomReservations handles GET /api/reservations/rooms.
func (rc *ReservationController) ListRoomReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	reservations, err := rc.Svc.ListRoomReservations(userID, isStaff(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// PatchRoomReservation handles PATCH /api/reservations/rooms/:id (staff).
// Rooms do not expose editable pricing; a total in the payload is rejected.
func (rc *ReservationController) PatchRoomReservation(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	var payload PatchReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Total != nil {
		utils.JSONError(c, http.StatusBadRequest, "total is not editable for room reservations")
		return
	}

	reservation, err := rc.Svc.UpdateStatus(id, payload.Status)
	if err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteRoomReservation handles DELETE /api/reservations/rooms/:id (staff).
func (rc *ReservationController) DeleteRoomReservation(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	if err := rc.Svc.Delete(id); err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
