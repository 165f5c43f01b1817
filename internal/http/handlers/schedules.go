package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"tiketbus/internal/config"
	"tiketbus/internal/domain/models"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/repositories"
	"tiketbus/internal/services"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/schedules?date=&origin=&destination=
func GetSchedules(c *gin.Context) {
	dateStr := strings.TrimSpace(c.Query("date"))
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parameter date wajib diisi (YYYY-MM-DD)"})
		return
	}
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format tanggal harus YYYY-MM-DD"})
		return
	}

	repo := repositories.ScheduleRepository{}
	schedules, err := repo.ListActiveByDay(
		utils.DayName(date),
		strings.TrimSpace(c.Query("origin")),
		strings.TrimSpace(c.Query("destination")),
	)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "schedules", "search", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mencari jadwal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      dateStr,
		"schedules": schedules,
	})
}

// GET /api/schedules/:id
func GetScheduleByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.ScheduleRepository{}
	detail, err := repo.GetDetailByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "jadwal tidak ditemukan"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data jadwal"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/schedules/:id/seats?date=
func GetScheduleSeats(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	dateStr := strings.TrimSpace(c.Query("date"))

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	seatMap, err := svc.Seats(id, dateStr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	holds := services.SeatHoldService{Redis: config.Redis, RequestID: middleware.GetRequestID(c)}
	held, err := holds.Held(c.Request.Context(), id, dateStr, seatMap.Capacity)
	if err == nil {
		seatMap.Held = held
	}

	c.JSON(http.StatusOK, seatMap)
}

// POST /api/admin/schedules
func CreateSchedule(c *gin.Context) {
	var input models.ScheduleInput
	if !bindJSON(c, &input) {
		return
	}
	if input.RouteID <= 0 || input.BusID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "route_id dan bus_id wajib diisi"})
		return
	}
	if len(input.DaysOfWeek) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days_of_week wajib diisi"})
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}

	repo := repositories.ScheduleRepository{}
	id, err := repo.Create(input)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "schedules", "create", "insert gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat jadwal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/admin/schedules/:id
func UpdateSchedule(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.ScheduleInput
	if !bindJSON(c, &input) {
		return
	}

	repo := repositories.ScheduleRepository{}
	if err := repo.Update(id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "jadwal tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate jadwal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/admin/schedules/:id
func DeleteSchedule(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.ScheduleRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "jadwal tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus jadwal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
