package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "booking-backend/internal/config"
	intdb "booking-backend/internal/db"
	router "booking-backend/internal/http"
	"booking-backend/internal/notify"
	"booking-backend/internal/services"
	"booking-backend/internal/session"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := intdb.EnsureSchema(db); err != nil {
		log.Fatalf("Gagal menyiapkan schema: %v", err)
	}

	var notifier notify.Notifier = notify.ConsoleNotifier{}
	if env.MailConfigured() {
		notifier = notify.SMTPNotifier{
			Host: env.SMTPHost,
			Port: env.SMTPPort,
			User: env.MailUser,
			Pass: env.MailPass,
		}
	} else {
		log.Println("GMAIL_USER/GMAIL_PASS kosong, OTP dikirim ke console")
	}
	mailer := notify.NewMailer(notifier, 64)

	sessions := session.NewStore()

	r := router.NewRouter(env, router.Deps{
		Sessions: sessions,
		Bookings: services.BookingService{Mailer: mailer},
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	// semua session gugur saat proses berhenti; antrian mail di-drain dulu
	sessions.Shutdown()
	mailer.Close()

	log.Println("Server berhenti dengan aman.")
}
