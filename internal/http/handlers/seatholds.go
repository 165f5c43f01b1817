package handlers

import (
	"net/http"

	"tiketbus/internal/config"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/services"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

type seatHoldInput struct {
	ScheduleID  int64  `json:"schedule_id"`
	TravelDate  string `json:"travel_date"`
	SeatNumbers []int  `json:"seat_numbers"`
}

// POST /api/seat-holds
func CreateSeatHold(c *gin.Context) {
	var input seatHoldInput
	if !bindJSON(c, &input) {
		return
	}
	if input.ScheduleID <= 0 || len(input.SeatNumbers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "schedule_id dan seat_numbers wajib diisi"})
		return
	}
	if _, err := utils.ParseDate(input.TravelDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format tanggal harus YYYY-MM-DD"})
		return
	}

	svc := services.SeatHoldService{Redis: config.Redis, RequestID: middleware.GetRequestID(c)}
	owner := holdOwner(middleware.GetUserID(c))
	if err := svc.Hold(c.Request.Context(), input.ScheduleID, input.TravelDate, input.SeatNumbers, owner); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"held":         input.SeatNumbers,
		"expires_in_s": 600,
	})
}

// DELETE /api/seat-holds
func ReleaseSeatHold(c *gin.Context) {
	var input seatHoldInput
	if !bindJSON(c, &input) {
		return
	}

	svc := services.SeatHoldService{Redis: config.Redis, RequestID: middleware.GetRequestID(c)}
	owner := holdOwner(middleware.GetUserID(c))
	svc.Release(c.Request.Context(), input.ScheduleID, input.TravelDate, input.SeatNumbers, owner)
	c.JSON(http.StatusOK, gin.H{"released": input.SeatNumbers})
}
