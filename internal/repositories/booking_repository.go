package repositories

import (
	"database/sql"
	"errors"

	intconfig "booking-backend/internal/config"
	"booking-backend/internal/domain"
	"booking-backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) Insert(b models.Booking) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	_, err := db.Exec(`
		INSERT INTO bookings (id, user_id, booking_date, amount, otp_hash, otp_salt, otp_expires, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)
	`, b.ID, b.UserID, b.BookingDate, b.Amount, b.OTPHash, b.OTPSalt, b.OTPExpires, b.CreatedAt)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// GetByIDForUser scopes the lookup to the owning user so one user can
// never verify another user's booking.
func (r BookingRepository) GetByIDForUser(id, userID string) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "db tidak tersedia"}
	}

	var b models.Booking
	err := db.QueryRow(`
		SELECT id, user_id, booking_date, amount, otp_hash, otp_salt, otp_expires, is_verified, created_at
		FROM bookings
		WHERE id = ? AND user_id = ?
		LIMIT 1
	`, id, userID).Scan(
		&b.ID,
		&b.UserID,
		&b.BookingDate,
		&b.Amount,
		&b.OTPHash,
		&b.OTPSalt,
		&b.OTPExpires,
		&b.IsVerified,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Msg: "Booking tidak ditemukan", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// MarkVerified flips is_verified to true. There is no path back to false.
func (r BookingRepository) MarkVerified(id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	if _, err := db.Exec(`UPDATE bookings SET is_verified = 1 WHERE id = ?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// ListByUser returns the user's bookings, newest created_at first.
func (r BookingRepository) ListByUser(userID string) ([]models.BookingSummary, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db tidak tersedia"}
	}

	rows, err := db.Query(`
		SELECT id, booking_date, amount, is_verified, created_at
		FROM bookings
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.BookingSummary{}
	for rows.Next() {
		var b models.BookingSummary
		if err := rows.Scan(&b.ID, &b.BookingDate, &b.Amount, &b.IsVerified, &b.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
