package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"tiketbus/internal/domain"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/repositories"
	"tiketbus/internal/services"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/tickets/:id/eticket.pdf
func GetETicketPDF(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data booking"})
		return
	}
	if detail.UserID != middleware.GetUserID(c) && middleware.GetUserRole(c) != domain.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking tidak ditemukan"})
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.DocsService{RequestID: reqID}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, "tickets", "eticket", "pdf "+filename+" dibuat")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
