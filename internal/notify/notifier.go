package notify

import (
	"fmt"
	"net/smtp"

	"booking-backend/internal/utils"
)

// Notifier delivers an OTP code to a recipient. Implementations may block;
// the Mailer keeps them off the request path.
type Notifier interface {
	Notify(to, code string) error
}

// ConsoleNotifier logs the code instead of sending mail. Used in dev when
// SMTP credentials are not configured.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(to, code string) error {
	utils.LogEvent("", "notify", "console_send", "to="+to+" otp="+code)
	return nil
}

// SMTPNotifier sends the OTP email over plain-auth SMTP.
type SMTPNotifier struct {
	Host string
	Port int
	User string
	Pass string
}

func (s SMTPNotifier) Notify(to, code string) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif">
    <h3>Kode OTP Booking Anda</h3>
    <p><strong style="font-size:20px">%s</strong></p>
    <p>Kode berlaku 5 menit.</p></div>`, code)

	msg := []byte("From: " + s.User + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: OTP Booking\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(addr, auth, s.User, []string{to}, msg)
}
