package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"tiketbus/internal/config"
	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/repositories"
	"tiketbus/internal/services"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// holdOwner menandai pemilik hold kursi, dipakai saat hold dan saat booking.
func holdOwner(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var input models.BookingInput
	if !bindJSON(c, &input) {
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.BookingService{RequestID: reqID}
	booking, err := svc.Create(userID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// Kursi sudah jadi milik booking; hold advisory tidak diperlukan lagi.
	holds := services.SeatHoldService{Redis: config.Redis, RequestID: reqID}
	holds.Release(c.Request.Context(), input.ScheduleID, input.TravelDate, input.SeatNumbers, holdOwner(userID))

	utils.LogEvent(reqID, "bookings", "create",
		fmt.Sprintf("booking %s dibuat untuk user %d", booking.BookingReference, userID))
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.BookingRepository{}
	detail, err := repo.GetDetailByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking tidak ditemukan"})
		return
	}
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "bookings", "detail", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data booking"})
		return
	}

	if detail.UserID != middleware.GetUserID(c) && middleware.GetUserRole(c) != domain.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/my/bookings
func GetMyBookings(c *gin.Context) {
	userID := middleware.GetUserID(c)

	repo := repositories.BookingRepository{}
	list, err := repo.ListByUser(userID)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "bookings", "my", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data booking"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/admin/bookings
func GetAllBookings(c *gin.Context) {
	repo := repositories.BookingRepository{}
	list, err := repo.ListAll()
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "bookings", "list", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data booking"})
		return
	}
	c.JSON(http.StatusOK, list)
}
