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

// GET /api/routes?origin=&destination=
func GetRoutes(c *gin.Context) {
	origin := strings.TrimSpace(c.Query("origin"))
	destination := strings.TrimSpace(c.Query("destination"))

	repo := repositories.RouteRepository{}
	routes, err := repo.ListActive(origin, destination)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "routes", "list", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data rute"})
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.RouteRepository{}
	route, err := repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rute tidak ditemukan"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data rute"})
		return
	}
	c.JSON(http.StatusOK, route)
}

// POST /api/admin/routes
func CreateRoute(c *gin.Context) {
	var input models.RouteInput
	if !bindJSON(c, &input) {
		return
	}
	if strings.TrimSpace(input.Origin) == "" || strings.TrimSpace(input.Destination) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin dan destination wajib diisi"})
		return
	}
	if input.BasePrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base_price harus lebih dari 0"})
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}

	repo := repositories.RouteRepository{}
	id, err := repo.Create(input)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "routes", "create", "insert gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat rute"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/admin/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.RouteInput
	if !bindJSON(c, &input) {
		return
	}

	repo := repositories.RouteRepository{}
	if err := repo.Update(id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rute tidak ditemukan"})
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "routes", "update", "update gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengupdate rute"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/admin/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	repo := repositories.RouteRepository{}
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rute tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus rute"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
