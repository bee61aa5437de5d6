package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"booking-backend/internal/domain"
	"booking-backend/internal/domain/models"
	"booking-backend/internal/otp"
	"booking-backend/internal/repositories"
	"booking-backend/internal/utils"
)

// OTPSender queues a code for delivery without blocking the caller.
type OTPSender interface {
	Enqueue(to, code string)
}

// BookingService owns booking creation, OTP verification and listing.
// The zero-value BookingRepo falls back to the shared DB handle.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	Mailer      OTPSender
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create issues an OTP challenge, persists the booking and queues the
// code for email delivery. The plaintext code lives only on its way to
// the mailer; the booking stores digest, salt and expiry.
func (s BookingService) Create(user models.User, bookingDate string, amount float64) (string, error) {
	if strings.TrimSpace(bookingDate) == "" || amount == 0 {
		return "", domain.ValidationError{Msg: "Data tidak lengkap"}
	}

	now := s.now()
	challenge, err := otp.NewChallenge(now)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}

	b := models.Booking{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		BookingDate: strings.TrimSpace(bookingDate),
		Amount:      amount,
		OTPHash:     challenge.Hash,
		OTPSalt:     challenge.Salt,
		OTPExpires:  challenge.ExpiresAt,
		CreatedAt:   now.UnixMilli(),
	}
	if err := s.BookingRepo.Insert(b); err != nil {
		return "", err
	}

	// fire and forget; a failed email never fails the booking
	if s.Mailer != nil {
		s.Mailer.Enqueue(user.Email, challenge.Plain)
	}

	utils.LogEvent(s.RequestID, "booking", "create", "booking_id="+b.ID)
	return b.ID, nil
}

// Verify checks the submitted code against the stored challenge and, on
// success, flips is_verified. An already-verified booking with a valid
// unexpired code verifies again; there is no re-verification guard.
func (s BookingService) Verify(userID, bookingID, submitted string) error {
	if strings.TrimSpace(bookingID) == "" || strings.TrimSpace(submitted) == "" {
		return domain.ValidationError{Msg: "Missing fields"}
	}

	b, err := s.BookingRepo.GetByIDForUser(bookingID, userID)
	if err != nil {
		return err
	}

	if err := otp.Check(submitted, b.OTPSalt, b.OTPHash, b.OTPExpires, s.now()); err != nil {
		return err
	}

	if err := s.BookingRepo.MarkVerified(b.ID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "verify", "booking_id="+b.ID)
	return nil
}

// List returns the user's bookings, newest first.
func (s BookingService) List(userID string) ([]models.BookingSummary, error) {
	return s.BookingRepo.ListByUser(userID)
}
