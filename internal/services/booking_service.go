package services

import (
	"database/sql"
	"fmt"
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/utils"
)

// BookingService owns the booking state machine. Status transitions, the
// matching slot mutations and the outbox record all commit in one
// transaction; notifications are dispatched from the outbox afterwards.
type BookingService struct {
	DB           *sql.DB
	Bookings     repositories.BookingRepository
	Availability repositories.AvailabilityRepository
	Vendors      repositories.VendorRepository
	Events       repositories.EventRepository
	Outbox       repositories.OutboxRepository
	RequestID    string

	// Test seams; nil means use the repositories above.
	FetchEvent  func(int64) (models.EventInfo, error)
	FetchVendor func(int64) (models.VendorInfo, error)
	Now         func() time.Time
}

type CreateBookingInput struct {
	EventID      int64           `json:"eventId"`
	VendorID     int64           `json:"vendorId"`
	ServiceID    int64           `json:"serviceId"`
	BookingDate  time.Time       `json:"bookingDate"`
	TimeSlot     models.TimeSlot `json:"timeSlot"`
	Requirements string          `json:"requirements"`
	Price        float64         `json:"price"`
}

// PaymentDetailsInput merges into the stored payment details; nil fields are
// left as they are.
type PaymentDetailsInput struct {
	Method        *string  `json:"method"`
	TransactionID *string  `json:"transactionId"`
	PaidAmount    *float64 `json:"paidAmount"`
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) event(id int64) (models.EventInfo, error) {
	if s.FetchEvent != nil {
		return s.FetchEvent(id)
	}
	return s.Events.GetByID(id)
}

func (s BookingService) vendor(id int64) (models.VendorInfo, error) {
	if s.FetchVendor != nil {
		return s.FetchVendor(id)
	}
	return s.Vendors.GetByID(id)
}

// CreateBooking validates the request against the event, the vendor's
// services and the slot calendar, then persists a pending booking. Slots are
// only held at confirmation time, so two pending requests for the same slot
// are both allowed.
func (s BookingService) CreateBooking(actor domain.Actor, in CreateBookingInput) (models.Booking, error) {
	if in.EventID <= 0 || in.VendorID <= 0 || in.ServiceID <= 0 || in.BookingDate.IsZero() ||
		in.TimeSlot.StartTime == "" || in.TimeSlot.EndTime == "" {
		return models.Booking{}, domain.ValidationError{Msg: "Missing required fields"}
	}
	if !utils.IsClockTime(in.TimeSlot.StartTime) || !utils.IsClockTime(in.TimeSlot.EndTime) {
		return models.Booking{}, domain.ValidationError{Msg: "Time must be in HH:MM format"}
	}
	if in.Price < 0 {
		return models.Booking{}, domain.ValidationError{Msg: "Price cannot be negative"}
	}
	if len(in.Requirements) > 1000 {
		return models.Booking{}, domain.ValidationError{Msg: "Requirements cannot be more than 1000 characters"}
	}

	event, err := s.event(in.EventID)
	if err == repositories.ErrEventNotFound {
		return models.Booking{}, domain.NotFoundError{Msg: "Event not found"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while creating booking", Err: err}
	}
	if !CanCreateBooking(actor, event) {
		return models.Booking{}, domain.ForbiddenError{Msg: "You don't have permission to book for this event"}
	}

	vendor, err := s.vendor(in.VendorID)
	if err == repositories.ErrVendorNotFound {
		return models.Booking{}, domain.NotFoundError{Msg: "Vendor not found"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while creating booking", Err: err}
	}
	if !vendor.HasService(in.ServiceID) {
		return models.Booking{}, domain.NotFoundError{Msg: "Service not found for this vendor"}
	}

	// Exact timestamp compare; day truncation only applies to slot lookup.
	if !in.BookingDate.After(s.now()) {
		return models.Booking{}, domain.ConflictError{Msg: "Booking date must be in the future"}
	}

	availability := AvailabilityService{Repo: s.Availability}
	if _, err := availability.FindOpenSlot(in.VendorID, in.BookingDate, in.TimeSlot); err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		EventID:        in.EventID,
		VendorID:       in.VendorID,
		UserID:         actor.UserID,
		ServiceID:      in.ServiceID,
		BookingDate:    in.BookingDate,
		TimeSlot:       in.TimeSlot,
		Status:         models.BookingPending,
		Requirements:   utils.TrimOrEmpty(in.Requirements),
		Price:          in.Price,
		PaymentStatus:  models.PaymentPending,
		PaymentDetails: models.PaymentDetails{Method: "none"},
		CancelledBy:    models.CancelledByNone,
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while creating booking", Err: err}
	}
	defer tx.Rollback()

	if err := s.Bookings.Insert(tx, &booking); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while creating booking", Err: err}
	}

	if err := s.Outbox.Insert(tx, &models.BookingEvent{
		BookingID:   booking.ID,
		EventType:   models.NotifyBookingRequest,
		RecipientID: vendor.OwnerUserID,
		Title:       "New Booking Request",
		Message: fmt.Sprintf("You have a new booking request for %s on %s",
			event.Name, utils.FormatDate(in.BookingDate)),
		Priority:   models.PriorityHigh,
		ActionLink: fmt.Sprintf("/vendor/bookings/%d", booking.ID),
	}); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while creating booking", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while creating booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d vendor_id=%d user_id=%d", booking.ID, in.VendorID, actor.UserID))
	return s.reload(booking.ID)
}

// UpdateStatus applies a vendor/admin transition to confirmed, rejected,
// cancelled or completed. Confirming holds the matching slot atomically; a
// slot already held by another booking is a conflict. A missing entry or
// slot does not block the transition — the calendar may legitimately have
// been edited since the request came in.
func (s BookingService) UpdateStatus(actor domain.Actor, bookingID int64, newStatus, notes string) (models.Booking, error) {
	if !models.IsTransitionStatus(newStatus) {
		return models.Booking{}, domain.ValidationError{Msg: "Status must be one of: confirmed, rejected, cancelled, completed"}
	}

	booking, err := s.Bookings.GetByID(s.DB, bookingID)
	if err == repositories.ErrBookingNotFound {
		return models.Booking{}, domain.NotFoundError{Msg: "Booking not found"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating booking status", Err: err}
	}

	var vendorOwnerID int64
	if vendor, err := s.vendor(booking.VendorID); err == nil {
		vendorOwnerID = vendor.OwnerUserID
	}
	if !CanUpdateBookingStatus(actor, vendorOwnerID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "You don't have permission to update this booking"}
	}

	if booking.IsTerminal() {
		return models.Booking{}, domain.ConflictError{Msg: fmt.Sprintf("Booking is already %s", booking.Status)}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating booking status", Err: err}
	}
	defer tx.Rollback()

	if newStatus == models.BookingConfirmed {
		err := s.Availability.ReserveSlot(tx, booking.VendorID, booking.BookingDate, booking.TimeSlot, booking.ID)
		switch err {
		case nil:
		case repositories.ErrSlotTaken:
			return models.Booking{}, domain.ConflictError{Msg: "The requested time slot is not available"}
		case repositories.ErrEntryNotFound, repositories.ErrSlotNotFound:
			utils.LogEvent(s.RequestID, "booking", "confirm_without_slot",
				fmt.Sprintf("booking_id=%d: no matching calendar slot", booking.ID))
		default:
			return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating booking status", Err: err}
		}
	}

	update := repositories.StatusUpdate{Status: newStatus}
	if notes != "" {
		update.Notes = &notes
	}
	if newStatus == models.BookingCancelled {
		reason := notes
		if reason == "" {
			reason = "Cancelled by vendor"
		}
		by := models.CancelledByVendor
		at := s.now()
		update.CancellationReason = &reason
		update.CancelledBy = &by
		update.CancelledAt = &at

		// Leaving confirmed must free the held slot; tolerate a calendar
		// that was edited underneath us.
		if booking.Status == models.BookingConfirmed {
			if err := s.releaseHeldSlot(tx, booking); err != nil {
				return models.Booking{}, err
			}
		}
	}

	if err := s.Bookings.UpdateStatus(tx, booking.ID, update); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating booking status", Err: err}
	}

	if err := s.Outbox.Insert(tx, &models.BookingEvent{
		BookingID:   booking.ID,
		EventType:   "booking_" + newStatus,
		RecipientID: booking.UserID,
		Title:       "Booking " + utils.Capitalize(newStatus),
		Message:     fmt.Sprintf("Your booking for %s has been %s by the vendor.", s.eventName(booking.EventID), newStatus),
		Priority:    models.PriorityHigh,
		ActionLink:  fmt.Sprintf("/bookings/%d", booking.ID),
	}); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating booking status", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating booking status", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "update_status",
		fmt.Sprintf("booking_id=%d status=%s", booking.ID, newStatus))
	return s.reload(booking.ID)
}

// CancelBooking is the owner-side cancellation. Double-cancel and
// cancel-after-complete are conflicts; a confirmed booking releases its slot.
func (s BookingService) CancelBooking(actor domain.Actor, bookingID int64, reason string) (models.Booking, error) {
	booking, err := s.Bookings.GetByID(s.DB, bookingID)
	if err == repositories.ErrBookingNotFound {
		return models.Booking{}, domain.NotFoundError{Msg: "Booking not found"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while cancelling booking", Err: err}
	}

	if !CanCancelBooking(actor, booking.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "You don't have permission to cancel this booking"}
	}
	if booking.Status == models.BookingCancelled {
		return models.Booking{}, domain.ConflictError{Msg: "Booking is already cancelled"}
	}
	if booking.Status == models.BookingCompleted {
		return models.Booking{}, domain.ConflictError{Msg: "Cannot cancel a completed booking"}
	}

	if reason == "" {
		reason = "Cancelled by user"
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while cancelling booking", Err: err}
	}
	defer tx.Rollback()

	by := models.CancelledByUser
	at := s.now()
	if err := s.Bookings.UpdateStatus(tx, booking.ID, repositories.StatusUpdate{
		Status:             models.BookingCancelled,
		CancellationReason: &reason,
		CancelledBy:        &by,
		CancelledAt:        &at,
	}); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while cancelling booking", Err: err}
	}

	if booking.Status == models.BookingConfirmed {
		if err := s.releaseHeldSlot(tx, booking); err != nil {
			return models.Booking{}, err
		}
	}

	var vendorOwnerID int64
	if vendor, err := s.vendor(booking.VendorID); err == nil {
		vendorOwnerID = vendor.OwnerUserID
	}
	if vendorOwnerID > 0 {
		if err := s.Outbox.Insert(tx, &models.BookingEvent{
			BookingID:   booking.ID,
			EventType:   models.NotifyBookingCancelled,
			RecipientID: vendorOwnerID,
			Title:       "Booking Cancelled",
			Message:     fmt.Sprintf("A booking for %s has been cancelled by the user.", s.eventName(booking.EventID)),
			Priority:    models.PriorityMedium,
			ActionLink:  fmt.Sprintf("/vendor/bookings/%d", booking.ID),
		}); err != nil {
			return models.Booking{}, domain.InternalError{Msg: "Server error occurred while cancelling booking", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while cancelling booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d", booking.ID))
	return s.reload(booking.ID)
}

// UpdatePaymentStatus merges payment details and advances the payment axis.
// PaidAt is written exactly once, the first time the status reaches paid or
// partial.
func (s BookingService) UpdatePaymentStatus(actor domain.Actor, bookingID int64, paymentStatus string, details *PaymentDetailsInput) (models.Booking, error) {
	if !models.IsValidPaymentStatus(paymentStatus) {
		return models.Booking{}, domain.ValidationError{Msg: "Payment status must be one of: pending, partial, paid, refunded"}
	}

	booking, err := s.Bookings.GetByID(s.DB, bookingID)
	if err == repositories.ErrBookingNotFound {
		return models.Booking{}, domain.NotFoundError{Msg: "Booking not found"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating payment status", Err: err}
	}

	var vendorOwnerID int64
	if vendor, err := s.vendor(booking.VendorID); err == nil {
		vendorOwnerID = vendor.OwnerUserID
	}
	if !CanUpdateBookingStatus(actor, vendorOwnerID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "You don't have permission to update payment status"}
	}

	update := repositories.PaymentUpdate{PaymentStatus: paymentStatus}
	if details != nil {
		if details.Method != nil {
			if !models.IsValidPaymentMethod(*details.Method) {
				return models.Booking{}, domain.ValidationError{Msg: "Invalid payment method"}
			}
			update.Method = details.Method
		}
		if details.TransactionID != nil {
			update.TransactionID = details.TransactionID
		}
		if details.PaidAmount != nil {
			if *details.PaidAmount < 0 {
				return models.Booking{}, domain.ValidationError{Msg: "Paid amount cannot be negative"}
			}
			update.PaidAmount = details.PaidAmount
		}
	}
	if (paymentStatus == models.PaymentPaid || paymentStatus == models.PaymentPartial) &&
		booking.PaymentDetails.PaidAt == nil {
		at := s.now()
		update.PaidAt = &at
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating payment status", Err: err}
	}
	defer tx.Rollback()

	if err := s.Bookings.UpdatePayment(tx, booking.ID, update); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating payment status", Err: err}
	}

	if err := s.Outbox.Insert(tx, &models.BookingEvent{
		BookingID:   booking.ID,
		EventType:   models.NotifyPaymentReceived,
		RecipientID: booking.UserID,
		Title:       "Payment Status Updated",
		Message:     fmt.Sprintf("The payment status for your booking has been updated to %s.", paymentStatus),
		Priority:    models.PriorityMedium,
		ActionLink:  fmt.Sprintf("/bookings/%d", booking.ID),
	}); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating payment status", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while updating payment status", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "update_payment",
		fmt.Sprintf("booking_id=%d payment_status=%s", booking.ID, paymentStatus))
	return s.reload(booking.ID)
}

// releaseHeldSlot frees the slot of a previously confirmed booking. The
// calendar entry or slot may have been deleted independently; that
// inconsistency is logged, not fatal.
func (s BookingService) releaseHeldSlot(tx repositories.DBTX, booking models.Booking) error {
	err := s.Availability.ReleaseSlot(tx, booking.VendorID, booking.BookingDate, booking.TimeSlot)
	switch err {
	case nil, repositories.ErrSlotNotHeld:
		return nil
	case repositories.ErrEntryNotFound, repositories.ErrSlotNotFound:
		utils.LogEvent(s.RequestID, "booking", "release_slot_missing",
			fmt.Sprintf("booking_id=%d: calendar slot no longer exists", booking.ID))
		return nil
	default:
		return domain.InternalError{Msg: "Server error occurred while cancelling booking", Err: err}
	}
}

func (s BookingService) eventName(eventID int64) string {
	if event, err := s.event(eventID); err == nil && event.Name != "" {
		return event.Name
	}
	return "your event"
}

func (s BookingService) reload(id int64) (models.Booking, error) {
	booking, err := s.Bookings.GetByID(s.DB, id)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while fetching booking", Err: err}
	}
	return booking, nil
}
