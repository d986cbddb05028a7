// controllers/table_reservation_controller.go
package controllers

import (
	"net/http"
	"time"

	"indigo-hotel/services"
	"indigo-hotel/utils"

	"github.com/gin-gonic/gin"
)

type CreateTableReservationPayload struct {
	TableID     uint   `json:"table_id" binding:"required"`
	ReservedFor string `json:"reserved_for" binding:"required"` // RFC 3339
	PartySize   int    `json:"party_size"`
	Notes       string `json:"notes"`
}

type TableReservationController struct {
	Svc *services.TableReservationService
}

func NewTableReservationController(svc *services.TableReservationService) *TableReservationController {
	return &TableReservationController{Svc: svc}
}

func (tc *TableReservationController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload CreateTableReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	reservedFor, err := time.Parse(time.RFC3339, payload.ReservedFor)
	if err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
			"reserved_for": "invalid datetime, expected RFC 3339",
		})
		return
	}

	reservation, err := tc.Svc.Create(services.CreateTableReservationInput{
		UserID:      userID,
		TableID:     payload.TableID,
		ReservedFor: reservedFor,
		PartySize:   payload.PartySize,
		Notes:       payload.Notes,
	})
	if err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (tc *TableReservationController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	reservations, err := tc.Svc.List(userID, isStaff(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// Patch updates the status. Tables carry no price, so a total is rejected
// just like for rooms.
func (tc *TableReservationController) Patch(c *gin.Context) {
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
		utils.JSONError(c, http.StatusBadRequest, "total is not editable for table reservations")
		return
	}

	reservation, err := tc.Svc.UpdateStatus(id, payload.Status)
	if err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (tc *TableReservationController) Delete(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	if err := tc.Svc.Delete(id); err != nil {
		utils.JSONError(c, statusForServiceError(err), err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
