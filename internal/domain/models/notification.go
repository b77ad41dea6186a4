package models

import "time"

// Notification types emitted by the booking lifecycle.
const (
	NotifyBookingRequest   = "booking_request"
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyBookingRejected  = "booking_rejected"
	NotifyBookingCancelled = "booking_cancelled"
	NotifyBookingCompleted = "booking_completed"
	NotifyPaymentReceived  = "payment_received"
	NotifySystem           = "system"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// RelatedKind tags the entity a notification points at.
type RelatedKind string

const (
	RelatedBooking RelatedKind = "booking"
	RelatedEvent   RelatedKind = "event"
	RelatedUser    RelatedKind = "user"
	RelatedMessage RelatedKind = "message"
)

// RelatedRef is a tagged reference to the entity that triggered a
// notification.
type RelatedRef struct {
	Kind RelatedKind `json:"kind"`
	ID   int64       `json:"id"`
}

type Notification struct {
	ID          int64      `json:"id"`
	RecipientID int64      `json:"recipientId"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Related     RelatedRef `json:"related"`
	Priority    string     `json:"priority"`
	ActionLink  string     `json:"actionLink,omitempty"`
	IsRead      bool       `json:"isRead"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BookingEvent is the durable intent record written in the same transaction
// as a booking mutation. The dispatcher turns pending events into
// notifications after commit; DispatchedAt stays NULL until then.
type BookingEvent struct {
	ID           int64      `json:"id"`
	BookingID    int64      `json:"bookingId"`
	EventType    string     `json:"eventType"`
	RecipientID  int64      `json:"recipientId"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Priority     string     `json:"priority"`
	ActionLink   string     `json:"actionLink"`
	CreatedAt    time.Time  `json:"createdAt"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
}
