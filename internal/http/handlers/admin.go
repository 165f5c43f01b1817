package handlers

import (
	"net/http"

	"tiketbus/internal/http/middleware"
	"tiketbus/internal/repositories"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	repo := repositories.StatsRepository{}
	stats, err := repo.Dashboard()
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "admin", "stats", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil statistik"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_buses":     stats.TotalBuses,
		"total_routes":    stats.TotalRoutes,
		"total_bookings":  stats.TotalBookings,
		"total_revenue":   stats.TotalRevenue,
		"revenue_display": utils.FormatRupiah(stats.TotalRevenue),
	})
}
