// Package otp issues and checks numeric one-time passwords. The plaintext
// code is transient: callers hand it to the notifier and keep only the
// salted HMAC digest.
package otp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"

	"booking-backend/internal/domain"
)

// TTL is the challenge validity window.
const TTL = 5 * time.Minute

const saltBytes = 16

// GenerateSalt returns a fresh random HMAC key, hex encoded. Never reused
// across challenges.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Derive computes HMAC-SHA256 of the code keyed by salt, hex encoded.
// Deterministic: verification recomputes and compares instead of storing
// the plaintext code.
func Derive(code, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// Challenge is one issued OTP. Plain exists only until it is handed off
// to the notification sender.
type Challenge struct {
	Plain     string
	Hash      string
	Salt      string
	ExpiresAt int64 // ms epoch
}

// NewChallenge draws a uniform code in [100000, 999999] and derives its
// digest under a fresh salt. Expiry is now + TTL.
func NewChallenge(now time.Time) (Challenge, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return Challenge{}, err
	}
	code := strconv.FormatInt(n.Int64()+100000, 10)

	salt, err := GenerateSalt()
	if err != nil {
		return Challenge{}, err
	}

	return Challenge{
		Plain:     code,
		Hash:      Derive(code, salt),
		Salt:      salt,
		ExpiresAt: now.Add(TTL).UnixMilli(),
	}, nil
}

// Check validates a submitted code against the stored challenge material.
// Expiry wins over correctness: an expired-but-correct code still fails.
func Check(submitted, salt, storedHash string, expiresAt int64, now time.Time) error {
	if now.UnixMilli() > expiresAt {
		return domain.ExpiredOTPError{}
	}
	if !hmac.Equal([]byte(Derive(submitted, salt)), []byte(storedHash)) {
		return domain.IncorrectOTPError{}
	}
	return nil
}
