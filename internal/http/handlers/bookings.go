package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-backend/internal/http/middleware"
	"booking-backend/internal/services"
)

type BookingHandler struct {
	Service services.BookingService
	Docs    services.DocsService
}

func (h BookingHandler) withRequestID(c *gin.Context) services.BookingService {
	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

type bookRequest struct {
	BookingDate string  `json:"bookingDate"`
	Amount      float64 `json:"amount"`
}

// POST /api/book
func (h BookingHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Data tidak lengkap"})
		return
	}

	bookingID, err := h.withRequestID(c).Create(user, req.BookingDate, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Booking dibuat. OTP dikirim ke email.",
		"bookingId": bookingID,
	})
}

type verifyRequest struct {
	BookingID string `json:"bookingId"`
	OTP       string `json:"otp"`
}

// POST /api/verify
func (h BookingHandler) Verify(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing fields"})
		return
	}

	if err := h.withRequestID(c).Verify(user.ID, req.BookingID, req.OTP); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP valid, booking terverifikasi"})
}

// GET /api/bookings
func (h BookingHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	bookings, err := h.withRequestID(c).List(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GET /api/bookings/:id/e-ticket
func (h BookingHandler) ETicket(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)

	pdfBytes, filename, err := docs.GenerateETicket(user, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func abortNoUser(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Harus login"})
}
