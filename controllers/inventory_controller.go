package controllers

import (
	"net/http"
	"strconv"

	"indigo-hotel/services"

	"github.com/gin-gonic/gin"
)

// Public catalog endpoints. GET /:id doubles as the resource snapshot the
// booking form needs (price, capacity, number/label).

var (
	roomSvc  services.RoomService
	tableSvc services.TableService
	salonSvc services.SalonService
)

func parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func GetRooms(c *gin.Context) {
	rooms, err := roomSvc.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := roomSvc.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func GetTables(c *gin.Context) {
	tables, err := tableSvc.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, tables)
}

func GetTableByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	table, err := tableSvc.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}
	c.JSON(http.StatusOK, table)
}

func GetSalons(c *gin.Context) {
	salons, err := salonSvc.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, salons)
}

func GetSalonByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	salon, err := salonSvc.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "salon not found"})
		return
	}
	c.JSON(http.StatusOK, salon)
}
