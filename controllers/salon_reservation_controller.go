// controllers/salon_reservation_controller.go
package controllers

import (
	"net/http"
	"time"

	"indigo-hotel/services"
	"indigo-hotel/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreateSalonReservationPayload struct {
	SalonID      uint           `json:"salon_id" binding:"required"`
	EventDate    string         `json:"event_date" binding:"required"` // RFC 3339
	GuestCount   int            `json:"guest_count" binding:"required"`
	EventDetails datatypes.JSON `json:"event_details,omitempty"`
}

type SalonReservationController struct {
	Svc *services.SalonReservationService
}

func NewSalonReservationController(svc *services.SalonReservationService) *SalonReservationController {
	return &SalonReservationController{Svc: svc}
}

func (sc *SalonReservationController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload CreateSalonReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	eventDate, err := time.Parse(time.RFC3339, payload.EventDate)
	if err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
			"event_date": "invalid datetime, expected RFC 3339",
		})
		return
	}

	reservation, err := sc.Svc.Create(services.CreateSalonReservationInput{
		UserID:       userID,
		SalonID:      payload.SalonID,
		EventDate:    eventDate,
		GuestCount:   payload.GuestCount,
		EventDetails: payload.EventDetails,
	})
	if err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (sc *SalonReservationController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	reservations, err := sc.Svc.List(userID, isStaff(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// Patch updates status and, for this kind only, accepts a price override.
func (sc *SalonReservationController) Patch(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	var payload PatchReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, err := sc.Svc.Update(id, payload.Status, payload.Total)
	if err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (sc *SalonReservationController) Delete(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	if err := sc.Svc.Delete(id); err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
