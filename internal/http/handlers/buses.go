package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"tiketbus/internal/domain/models"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/repositories"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/buses
func GetBuses(c *gin.Context) {
	repo := repositories.BusRepository{}
	buses, err := repo.List()
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "buses", "list", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data bus"})
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GET /api/admin/buses/:id
func GetBusByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.BusRepository{}
	bus, err := repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bus tidak ditemukan"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data bus"})
		return
	}
	c.JSON(http.StatusOK, bus)
}

// POST /api/admin/buses
func CreateBus(c *gin.Context) {
	var input models.BusInput
	if !bindJSON(c, &input) {
		return
	}
	if strings.TrimSpace(input.BusNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bus_number wajib diisi"})
		return
	}
	if input.Capacity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity harus lebih dari 0"})
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}

	repo := repositories.BusRepository{}
	id, err := repo.Create(input)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "buses", "create", "insert gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat bus"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/admin/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.BusInput
	if !bindJSON(c, &input) {
		return
	}

	repo := repositories.BusRepository{}
	if err := repo.Update(id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bus tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate bus"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/admin/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.BusRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bus tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus bus"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
