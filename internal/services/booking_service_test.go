package services

import (
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"booking-backend/internal/domain"
	"booking-backend/internal/domain/models"
	"booking-backend/internal/otp"
	"booking-backend/internal/repositories"
)

type recordingSender struct {
	mu    sync.Mutex
	to    []string
	codes []string
}

func (r *recordingSender) Enqueue(to, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = append(r.to, to)
	r.codes = append(r.codes, code)
}

// captureArg stores the matched query argument for later assertions.
type captureArg struct {
	v *driver.Value
}

func (c captureArg) Match(v driver.Value) bool {
	*c.v = v
	return true
}

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

func testUser() models.User {
	return models.User{ID: "u-1", Name: "Budi", Email: "budi@example.com", Phone: "0812"}
}

func TestCreateBookingPersistsDigestNotPlaintext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	var hashArg, saltArg, expiresArg driver.Value
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			sqlmock.AnyArg(), // id
			"u-1",
			"2024-01-01",
			100.0,
			captureArg{&hashArg},
			captureArg{&saltArg},
			captureArg{&expiresArg},
			fixedNow().UnixMilli(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sender := &recordingSender{}
	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Mailer:      sender,
		Now:         fixedNow,
	}

	id, err := svc.Create(testUser(), "2024-01-01", 100)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id == "" {
		t.Fatal("expected booking id")
	}

	if len(sender.codes) != 1 || sender.to[0] != "budi@example.com" {
		t.Fatalf("expected one OTP mail to user, got %+v", sender)
	}
	code := sender.codes[0]
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	// stored digest must be the HMAC of the mailed code under the stored salt
	salt, _ := saltArg.(string)
	hash, _ := hashArg.(string)
	if otp.Derive(code, salt) != hash {
		t.Fatal("stored hash does not match mailed code")
	}
	if hash == code || salt == code {
		t.Fatal("plaintext code leaked into stored columns")
	}

	expires, _ := expiresArg.(int64)
	if expires != fixedNow().Add(5*time.Minute).UnixMilli() {
		t.Fatalf("unexpected expiry: %d", expires)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingValidatesInput(t *testing.T) {
	svc := BookingService{Now: fixedNow}

	if _, err := svc.Create(testUser(), "", 100); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty date, got %v", err)
	}
	if _, err := svc.Create(testUser(), "2024-01-01", 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func bookingRow(salt, hash string, expires int64, verified int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "booking_date", "amount", "otp_hash", "otp_salt", "otp_expires", "is_verified", "created_at",
	}).AddRow("b-1", "u-1", "2024-01-01", 100.0, hash, salt, expires, verified, int64(1700000000000))
}

func TestVerifyRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	salt := "00112233445566778899aabbccddeeff"
	hash := otp.Derive("123456", salt)
	expires := fixedNow().Add(5 * time.Minute).UnixMilli()

	mock.ExpectQuery("FROM bookings WHERE id = \\? AND user_id = \\?").
		WithArgs("b-1", "u-1").
		WillReturnRows(bookingRow(salt, hash, expires, 0))
	mock.ExpectExec("UPDATE bookings SET is_verified = 1").
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}, Now: fixedNow}
	if err := svc.Verify("u-1", "b-1", "123456"); err != nil {
		t.Fatalf("verify error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyIncorrectCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	salt := "00112233445566778899aabbccddeeff"
	hash := otp.Derive("123456", salt)
	expires := fixedNow().Add(5 * time.Minute).UnixMilli()

	mock.ExpectQuery("FROM bookings").
		WithArgs("b-1", "u-1").
		WillReturnRows(bookingRow(salt, hash, expires, 0))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}, Now: fixedNow}
	err = svc.Verify("u-1", "b-1", "654321")
	if !domain.IsIncorrectOTP(err) {
		t.Fatalf("expected incorrect OTP error, got %v", err)
	}

	// no UPDATE may have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyExpiredEvenWhenCorrect(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	salt := "00112233445566778899aabbccddeeff"
	hash := otp.Derive("123456", salt)
	expires := fixedNow().Add(-time.Second).UnixMilli()

	mock.ExpectQuery("FROM bookings").
		WithArgs("b-1", "u-1").
		WillReturnRows(bookingRow(salt, hash, expires, 0))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}, Now: fixedNow}
	err = svc.Verify("u-1", "b-1", "123456")
	if !domain.IsExpiredOTP(err) {
		t.Fatalf("expected expired OTP error, got %v", err)
	}
}

func TestVerifyUnknownBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").
		WithArgs("b-404", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "booking_date", "amount", "otp_hash", "otp_salt", "otp_expires", "is_verified", "created_at",
		}))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}, Now: fixedNow}
	err = svc.Verify("u-1", "b-404", "123456")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestVerifyMissingFields(t *testing.T) {
	svc := BookingService{Now: fixedNow}

	if err := svc.Verify("u-1", "", "123456"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Verify("u-1", "b-1", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// Documents current behavior: no re-verification guard, a valid unexpired
// code verifies an already-verified booking again.
func TestVerifyAlreadyVerifiedSucceedsAgain(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	salt := "00112233445566778899aabbccddeeff"
	hash := otp.Derive("123456", salt)
	expires := fixedNow().Add(5 * time.Minute).UnixMilli()

	mock.ExpectQuery("FROM bookings").
		WithArgs("b-1", "u-1").
		WillReturnRows(bookingRow(salt, hash, expires, 1))
	mock.ExpectExec("UPDATE bookings SET is_verified = 1").
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}, Now: fixedNow}
	if err := svc.Verify("u-1", "b-1", "123456"); err != nil {
		t.Fatalf("verify error: %v", err)
	}
}
