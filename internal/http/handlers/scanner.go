package handlers

import (
	"net/http"
	"strings"

	"tiketbus/internal/domain"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/services"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

type validateTicketInput struct {
	Code string `json:"code"`
}

type markUsedInput struct {
	TicketID int64 `json:"ticket_id"`
}

// POST /api/scanner/validate
//
// Menerima isi QR atau kode booking, lalu mengembalikan verdict tiket.
// Tiket yang tidak ditemukan bukan error: response 200 dengan valid=false.
func ValidateTicket(c *gin.Context) {
	var input validateTicketInput
	if !bindJSON(c, &input) {
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.TicketService{RequestID: reqID}
	result, err := svc.Validate(strings.TrimSpace(input.Code))
	if err != nil {
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.LogEvent(reqID, "scanner", "validate", "lookup gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal memvalidasi tiket"})
		return
	}

	utils.LogEvent(reqID, "scanner", "validate",
		"kode "+input.Code+" -> "+string(result.Status))
	c.JSON(http.StatusOK, result)
}

// POST /api/scanner/mark-used
//
// Check-in: menandai tiket sebagai sudah dipakai. Transisinya conditional
// update di database, jadi dua scan bersamaan hanya satu yang menang.
func MarkTicketUsed(c *gin.Context) {
	var input markUsedInput
	if !bindJSON(c, &input) {
		return
	}
	if input.TicketID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ticket_id wajib diisi"})
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.TicketService{RequestID: reqID}
	result, err := svc.MarkUsed(input.TicketID)
	if err != nil {
		// check-in failures always carry success=false next to the error
		status := http.StatusInternalServerError
		msg := "gagal menandai tiket"
		switch {
		case domain.IsValidation(err):
			status = http.StatusBadRequest
			msg = err.Error()
		case domain.IsNotFound(err):
			status = http.StatusNotFound
			msg = err.Error()
		case domain.IsConflict(err):
			status = http.StatusConflict
			msg = err.Error()
		}
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	utils.LogEvent(reqID, "scanner", "mark_used",
		"tiket "+result.BookingReference+" check-in")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "tiket berhasil ditandai sudah digunakan",
		"ticket":  result,
	})
}
