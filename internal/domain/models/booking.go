package models

// Booking carries its OTP challenge inline (hash + salt + expiry),
// never the plaintext code. IsVerified only moves false -> true.
// OTPExpires and CreatedAt are epoch milliseconds.
type Booking struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	BookingDate string  `json:"booking_date"`
	Amount      float64 `json:"amount"`
	OTPHash     string  `json:"-"`
	OTPSalt     string  `json:"-"`
	OTPExpires  int64   `json:"-"`
	IsVerified  bool    `json:"is_verified"`
	CreatedAt   int64   `json:"created_at"`
}

// BookingSummary is the list-endpoint projection (no OTP material).
type BookingSummary struct {
	ID          string  `json:"id"`
	BookingDate string  `json:"booking_date"`
	Amount      float64 `json:"amount"`
	IsVerified  bool    `json:"is_verified"`
	CreatedAt   int64   `json:"created_at"`
}
