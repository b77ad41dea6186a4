package services

import (
	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
)

// Authorization policy for the booking core. Every operation has one
// explicit decision function over the actor and the resource's owner ids, so
// the rules stay testable without HTTP or storage in the loop.

// CanCreateBooking allows the event owner and collaborators to book vendors
// for that event.
func CanCreateBooking(actor domain.Actor, event models.EventInfo) bool {
	return event.CanBeBookedBy(actor.UserID)
}

// CanViewBooking allows the booking owner, the vendor-owner of record and
// admins.
func CanViewBooking(actor domain.Actor, bookingUserID, vendorOwnerUserID int64) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.UserID == bookingUserID {
		return true
	}
	return actor.Role == domain.RoleVendor && actor.UserID == vendorOwnerUserID
}

// CanUpdateBookingStatus allows the vendor-owner of the booking's vendor and
// admins. Payment status updates follow the same rule.
func CanUpdateBookingStatus(actor domain.Actor, vendorOwnerUserID int64) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == domain.RoleVendor && vendorOwnerUserID != 0 && actor.UserID == vendorOwnerUserID
}

// CanCancelBooking allows the owning user and admins.
func CanCancelBooking(actor domain.Actor, bookingUserID int64) bool {
	return actor.IsAdmin() || actor.UserID == bookingUserID
}

// CanManageAvailability allows vendor accounts and admins to edit slot
// calendars.
func CanManageAvailability(actor domain.Actor) bool {
	return actor.Role == domain.RoleVendor || actor.IsAdmin()
}

// CanListVendorBookings gates the vendor-scoped booking list.
func CanListVendorBookings(actor domain.Actor) bool {
	return actor.Role == domain.RoleVendor || actor.IsAdmin()
}
