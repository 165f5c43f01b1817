package handlers

import (
	"net/http"

	"tiketbus/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondDomainError menerjemahkan error domain ke status HTTP. Detail error
// internal tidak pernah ikut ke response.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "terjadi kesalahan pada server"})
	}
}
