package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"booking-backend/internal/domain"
	"booking-backend/internal/domain/models"
	"booking-backend/internal/repositories"
	"booking-backend/internal/utils"
)

// DocsService menghasilkan PDF e-ticket untuk booking yang sudah
// terverifikasi OTP.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func (s DocsService) GenerateETicket(user models.User, bookingID string) ([]byte, string, error) {
	b, err := s.BookingRepo.GetByIDForUser(bookingID, user.ID)
	if err != nil {
		return nil, "", err
	}
	if !b.IsVerified {
		return nil, "", domain.ValidationError{Msg: "booking belum terverifikasi"}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "booking_id="+b.ID)
	return buildETicketPDF(user, b)
}

func buildETicketPDF(user models.User, b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET BOOKING")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Nama            : %s", safe(user.Name, "-")),
		fmt.Sprintf("Email           : %s", safe(user.Email, "-")),
		fmt.Sprintf("No HP           : %s", safe(user.Phone, "-")),
		fmt.Sprintf("Tanggal Booking : %s", safe(b.BookingDate, "-")),
		fmt.Sprintf("Jumlah          : %s", formatRupiah(int64(b.Amount))),
		"Status          : Terverifikasi",
		fmt.Sprintf("Dibuat          : %s", time.UnixMilli(b.CreatedAt).Format("2006-01-02 15:04")),
		fmt.Sprintf("Kode Booking    : %s", b.ID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: E-ticket ini hanya berlaku untuk booking yang sudah diverifikasi OTP.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(b.ID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatRupiah(v int64) string {
	if v <= 0 {
		return "Rp 0"
	}
	s := fmt.Sprintf("%d", v)
	var out []byte
	n := len(s)
	for i := 0; i < n; i++ {
		out = append(out, s[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, '.')
		}
	}
	return "Rp " + string(out)
}
