package models

import "time"

// Booking statuses. Rejected, cancelled and completed are terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses, independent axis from booking status.
const (
	PaymentPending  = "pending"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Cancellation origin recorded on the booking.
const (
	CancelledByNone   = "none"
	CancelledByUser   = "user"
	CancelledByVendor = "vendor"
	CancelledByAdmin  = "admin"
)

// TimeSlot is a fixed interval on a vendor's calendar, HH:MM 24-hour strings.
// Slot matching is exact string equality on both ends.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PaymentDetails holds the merged payment metadata. PaidAt is written once,
// the first time the payment status reaches partial or paid.
type PaymentDetails struct {
	Method        string     `json:"method"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaidAmount    float64    `json:"paidAmount"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

type Booking struct {
	ID                 int64          `json:"id"`
	EventID            int64          `json:"eventId"`
	VendorID           int64          `json:"vendorId"`
	UserID             int64          `json:"userId"`
	ServiceID          int64          `json:"serviceId"`
	BookingDate        time.Time      `json:"bookingDate"`
	TimeSlot           TimeSlot       `json:"timeSlot"`
	Status             string         `json:"status"`
	Requirements       string         `json:"requirements,omitempty"`
	Price              float64        `json:"price"`
	PaymentStatus      string         `json:"paymentStatus"`
	PaymentDetails     PaymentDetails `json:"paymentDetails"`
	Notes              string         `json:"notes,omitempty"`
	CancellationReason string         `json:"cancellationReason,omitempty"`
	CancelledBy        string         `json:"cancelledBy"`
	CancelledAt        *time.Time     `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// IsTerminal reports whether no further status transition is permitted.
func (b Booking) IsTerminal() bool {
	return IsTerminalBookingStatus(b.Status)
}

func IsTerminalBookingStatus(status string) bool {
	switch status {
	case BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// IsTransitionStatus reports whether status is one a vendor or admin may set
// via the status update operation. Pending is only ever the initial state.
func IsTransitionStatus(status string) bool {
	switch status {
	case BookingConfirmed, BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// Payment methods accepted on payment details.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case "cash", "card", "online", "bank_transfer", "none":
		return true
	}
	return false
}
