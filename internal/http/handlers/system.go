package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "booking-backend/internal/config"
)

type SystemHandler struct {
	DB *sql.DB
}

func (h SystemHandler) db() *sql.DB {
	if h.DB != nil {
		return h.DB
	}
	return intconfig.DB
}

func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "booking backend berjalan"})
}

func (h SystemHandler) DBCheck(c *gin.Context) {
	db := h.db()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung"})
		return
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "users_in_db": count})
}
