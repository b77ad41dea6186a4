package models

import "time"

// Slot is one bookable interval inside an availability entry. BookingID is
// set while the slot is held by a confirmed booking.
type Slot struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// AvailabilityEntry is a vendor's full slot list for one calendar date.
// IsFullyBooked is derived (AND over slots); IsUnavailable is a vendor-declared
// blackout independent of slot occupancy.
type AvailabilityEntry struct {
	ID            int64     `json:"id"`
	VendorID      int64     `json:"vendorId"`
	Date          time.Time `json:"date"`
	Slots         []Slot    `json:"slots"`
	IsFullyBooked bool      `json:"isFullyBooked"`
	IsUnavailable bool      `json:"isUnavailable"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HasOpenSlot reports whether at least one slot is free.
func (e AvailabilityEntry) HasOpenSlot() bool {
	for _, s := range e.Slots {
		if !s.IsBooked {
			return true
		}
	}
	return false
}

// SlotInput is the vendor-provided shape when creating or replacing slots.
type SlotInput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
