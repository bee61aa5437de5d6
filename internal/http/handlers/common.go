package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-backend/internal/domain"
	"booking-backend/internal/http/middleware"
)

// RespondDomainError maps domain errors to the API contract. Expected
// domain failures (duplicate email, wrong/expired OTP) stay HTTP 200 with
// success:false; only unexpected failures become server errors.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case domain.IsAuth(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case domain.IsConflict(err), domain.IsExpiredOTP(err), domain.IsIncorrectOTP(err):
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("[HTTP] request_id=%s internal error: %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
	}
}
