package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tiketbus/internal/config"
	"tiketbus/internal/domain"
	h "tiketbus/internal/http/handlers"
	"tiketbus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.RequireAuth(), h.Me)

		// Pencarian publik
		api.GET("/routes", h.GetRoutes)
		api.GET("/routes/:id", h.GetRouteByID)
		api.GET("/schedules", h.GetSchedules)
		api.GET("/schedules/:id", h.GetScheduleByID)
		api.GET("/schedules/:id/seats", h.GetScheduleSeats)

		// Webhook pembayaran (dipanggil provider, tanpa JWT)
		api.POST("/payments/webhook", h.PaymentWebhook)

		// Customer (butuh login)
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("/seat-holds", h.CreateSeatHold)
			authed.DELETE("/seat-holds", h.ReleaseSeatHold)
			authed.POST("/bookings", h.CreateBooking)
			authed.GET("/bookings/:id", h.GetBooking)
			authed.GET("/my/bookings", h.GetMyBookings)
			authed.POST("/payments/simulate", h.SimulatePayment)
			authed.GET("/tickets/:id/eticket.pdf", h.GetETicketPDF)
		}

		// Scanner petugas
		scanner := api.Group("/scanner")
		scanner.Use(middleware.RequireAuth(), middleware.RequireRoles(domain.RoleStaff, domain.RoleAdmin))
		{
			scanner.POST("/validate", h.ValidateTicket)
			scanner.POST("/mark-used", h.MarkTicketUsed)
		}

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.GET("/stats", h.GetDashboardStats)
			admin.GET("/bookings", h.GetAllBookings)

			admin.GET("/buses", h.GetBuses)
			admin.GET("/buses/:id", h.GetBusByID)
			admin.POST("/buses", h.CreateBus)
			admin.PUT("/buses/:id", h.UpdateBus)
			admin.DELETE("/buses/:id", h.DeleteBus)

			admin.POST("/routes", h.CreateRoute)
			admin.PUT("/routes/:id", h.UpdateRoute)
			admin.DELETE("/routes/:id", h.DeleteRoute)

			admin.POST("/schedules", h.CreateSchedule)
			admin.PUT("/schedules/:id", h.UpdateSchedule)
			admin.DELETE("/schedules/:id", h.DeleteSchedule)
		}
	}

	return r
}
