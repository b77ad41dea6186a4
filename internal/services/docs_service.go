package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking paperwork: the confirmation sheet and the
// invoice, both as PDF.
type DocsService struct {
	Bookings  repositories.BookingRepository
	Vendors   repositories.VendorRepository
	Events    repositories.EventRepository
	Users     repositories.UserRepository
	RequestID string
	Loader    func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID     int64
	EventName     string
	VendorName    string
	CustomerName  string
	CustomerEmail string
	BookingDate   string
	StartTime     string
	EndTime       string
	Status        string
	Requirements  string
	Price         float64
	PaymentStatus string
	PaymentMethod string
	PaidAmount    float64
	TransactionID string
}

// GenerateInvoice renders the invoice PDF for a booking the actor may view.
func (s DocsService) GenerateInvoice(actor domain.Actor, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(actor, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

// GenerateConfirmation renders the booking confirmation sheet.
func (s DocsService) GenerateConfirmation(actor domain.Actor, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(actor, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(data)
}

func (s DocsService) loadBookingDocData(actor domain.Actor, bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	var out bookingDocData
	booking, err := s.Bookings.GetByID(s.Bookings.DB, bookingID)
	if err == repositories.ErrBookingNotFound {
		return out, domain.NotFoundError{Msg: "Booking not found"}
	}
	if err != nil {
		return out, domain.InternalError{Msg: "Server error occurred while generating document", Err: err}
	}

	var vendorOwnerID int64
	if vendor, err := s.Vendors.GetByID(booking.VendorID); err == nil {
		vendorOwnerID = vendor.OwnerUserID
		out.VendorName = vendor.BusinessName
	}
	if !CanViewBooking(actor, booking.UserID, vendorOwnerID) {
		return out, domain.ForbiddenError{Msg: "You don't have permission to view this booking"}
	}

	out.BookingID = booking.ID
	out.BookingDate = utils.FormatDate(booking.BookingDate)
	out.StartTime = booking.TimeSlot.StartTime
	out.EndTime = booking.TimeSlot.EndTime
	out.Status = booking.Status
	out.Requirements = booking.Requirements
	out.Price = booking.Price
	out.PaymentStatus = booking.PaymentStatus
	out.PaymentMethod = booking.PaymentDetails.Method
	out.PaidAmount = booking.PaymentDetails.PaidAmount
	out.TransactionID = booking.PaymentDetails.TransactionID

	if event, err := s.Events.GetByID(booking.EventID); err == nil {
		out.EventName = event.Name
	}
	if user, err := s.Users.GetByID(booking.UserID); err == nil {
		out.CustomerName = user.Name
		out.CustomerEmail = user.Email
	}
	return out, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%s", d.BookingID, safeFilenamePart(d.BookingDate))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.CustomerName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", safe(d.CustomerEmail, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Vendor booking: %s for %s on %s (%s - %s)",
		safe(d.VendorName, "-"), safe(d.EventName, "-"),
		safe(d.BookingDate, "-"), safe(d.StartTime, "-"), safe(d.EndTime, "-"),
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Price: "+utils.FormatMoney(d.Price))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Payment status: %s (%s)", safe(d.PaymentStatus, "-"), safe(d.PaymentMethod, "-")))
	pdf.Ln(6)
	if d.PaidAmount > 0 {
		pdf.Cell(0, 6, "Paid: "+utils.FormatMoney(d.PaidAmount))
		pdf.Ln(6)
	}
	if strings.TrimSpace(d.TransactionID) != "" {
		pdf.Cell(0, 6, "Transaction: "+d.TransactionID)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(d.Price))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This invoice covers a single vendor booking.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", d.BookingID, safeFilenamePart(d.EventName))
	return buf.Bytes(), filename, nil
}

func buildConfirmationPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No : #%d", d.BookingID),
		fmt.Sprintf("Event      : %s", safe(d.EventName, "-")),
		fmt.Sprintf("Vendor     : %s", safe(d.VendorName, "-")),
		fmt.Sprintf("Customer   : %s", safe(d.CustomerName, "-")),
		fmt.Sprintf("Date       : %s", safe(d.BookingDate, "-")),
		fmt.Sprintf("Time       : %s - %s", safe(d.StartTime, "-"), safe(d.EndTime, "-")),
		fmt.Sprintf("Status     : %s", safe(d.Status, "-")),
		fmt.Sprintf("Price      : %s", utils.FormatMoney(d.Price)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if strings.TrimSpace(d.Requirements) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Requirements:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, d.Requirements, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this confirmation to the vendor on the event date.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BOOKING_%d_%s.pdf", d.BookingID, safeFilenamePart(d.EventName))
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
