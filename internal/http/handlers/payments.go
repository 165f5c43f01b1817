package handlers

import (
	"net/http"
	"strings"

	"tiketbus/internal/http/middleware"
	"tiketbus/internal/services"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
)

type simulatePaymentInput struct {
	BookingID     int64  `json:"booking_id"`
	PaymentMethod string `json:"payment_method"`
	Outcome       string `json:"outcome"`
}

type paymentWebhookInput struct {
	BookingID     int64  `json:"booking_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// POST /api/payments/simulate
func SimulatePayment(c *gin.Context) {
	var input simulatePaymentInput
	if !bindJSON(c, &input) {
		return
	}
	if input.BookingID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id wajib diisi"})
		return
	}
	if input.Outcome == "" {
		input.Outcome = services.OutcomeSuccess
	}
	if input.Outcome != services.OutcomeSuccess && input.Outcome != services.OutcomeFailed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "outcome harus success atau failed"})
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.PaymentService{RequestID: reqID}
	result, err := svc.Simulate(input.BookingID, middleware.GetUserID(c), input.PaymentMethod, input.Outcome)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, "payments", "simulate",
		"booking "+result.PaymentStatus+" untuk outcome "+input.Outcome)
	c.JSON(http.StatusOK, result)
}

// POST /api/payments/webhook
func PaymentWebhook(c *gin.Context) {
	var input paymentWebhookInput
	if !bindJSON(c, &input) {
		return
	}
	if input.BookingID <= 0 || strings.TrimSpace(input.TransactionID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id dan transaction_id wajib diisi"})
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	if err := svc.HandleWebhook(input.BookingID, input.TransactionID, input.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
