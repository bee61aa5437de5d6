package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "booking-backend/internal/config"
	h "booking-backend/internal/http/handlers"
	"booking-backend/internal/http/middleware"
	"booking-backend/internal/repositories"
	"booking-backend/internal/services"
	"booking-backend/internal/session"
)

// Deps carries the shared state handlers need; nothing is reached through
// package globals except the fallback DB handle inside the repositories.
type Deps struct {
	Sessions *session.Store
	Users    repositories.UserRepository
	Bookings services.BookingService
	Docs     services.DocsService
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	authH := h.AuthHandler{Users: deps.Users, Sessions: deps.Sessions}
	bookingH := h.BookingHandler{Service: deps.Bookings, Docs: deps.Docs}
	systemH := h.SystemHandler{}

	api := r.Group("/api")
	{
		api.GET("/health", systemH.Health)
		api.GET("/db-check", systemH.DBCheck)

		api.POST("/register", authH.Register)
		api.POST("/login", authH.Login)
		api.POST("/logout", authH.Logout)

		authed := api.Group("")
		authed.Use(middleware.RequireLogin(deps.Sessions, deps.Users))
		authed.POST("/book", bookingH.Create)
		authed.POST("/verify", bookingH.Verify)
		authed.GET("/bookings", bookingH.List)
		authed.GET("/bookings/:id/e-ticket", bookingH.ETicket)
	}

	mountStatic(r, env.StaticDir)

	return r
}

// mountStatic serves the frontend from staticDir when the directory
// exists; /api keeps its JSON 404.
func mountStatic(r *gin.Engine, staticDir string) {
	if fi, err := os.Stat(staticDir); err == nil && fi.IsDir() {
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			r.GET("/", func(c *gin.Context) { c.File(index) })
		}
	}

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			p := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				c.File(p)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
