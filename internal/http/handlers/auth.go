package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"booking-backend/internal/auth"
	"booking-backend/internal/domain"
	"booking-backend/internal/domain/models"
	"booking-backend/internal/http/middleware"
	"booking-backend/internal/repositories"
	"booking-backend/internal/session"
	"booking-backend/internal/utils"
)

type AuthHandler struct {
	Users    repositories.UserRepository
	Sessions *session.Store
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Data tidak lengkap"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Data tidak lengkap"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
	}
	if err := h.Users.Insert(user); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user_id="+user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registrasi berhasil"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/login
//
// Unknown email and wrong password are distinct messages, but both stay
// HTTP 200 with success:false; the status code never leaks which one.
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Data tidak lengkap"})
		return
	}

	user, err := h.Users.GetByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "Email tidak ditemukan"})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Password salah"})
		return
	}

	token := h.Sessions.Create(user.ID)
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login berhasil"})
}

// POST /api/logout
//
// Idempotent: logging out without an active session still succeeds.
func (h AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(middleware.SessionCookie); err == nil && sid != "" {
		h.Sessions.Destroy(sid)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout berhasil"})
}
